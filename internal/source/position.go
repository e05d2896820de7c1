package source

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// Position is a location inside one source buffer.
// Offset is a byte offset; Line and Col are 0-based, Col counts runes.
// Positions are plain values: copying one never aliases the lexer cursor.
type Position struct {
	Offset uint32
	Line   uint32
	Col    uint32
}

// Advance returns the position after consuming r.
func (p Position) Advance(r rune) Position {
	size := utf8.RuneLen(r)
	if size < 0 {
		size = 1 // utf8.RuneError из битых байтов занимает один байт
	}
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	p.Offset += n
	if r == '\n' {
		p.Line++
		p.Col = 0
		return p
	}
	p.Col++
	return p
}

// Human converts the position to 1-based line/column.
func (p Position) Human() LineCol {
	return LineCol{Line: p.Line + 1, Col: p.Col + 1}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Col+1)
}
