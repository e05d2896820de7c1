package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"tally/internal/source"
)

// Cursor is the single forward position of the lexer over one file.
// Pos is the live location; spans only ever receive copies of it.
type Cursor struct {
	File  *source.File
	Pos   source.Position
	Limit uint32 // exclusive upper bound for Pos.Offset
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Pos.Offset >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Pos.Offset]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Pos.Offset+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Pos.Offset], c.File.Content[c.Pos.Offset+1], true
}

// PeekRune decodes the rune under the cursor; size is 0 at EOF.
// Invalid UTF-8 yields utf8.RuneError with size 1.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Pos.Offset]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Pos.Offset:c.Limit])
}

// Bump перемещает курсор на одну руну вперёд и возвращает её.
func (c *Cursor) Bump() rune {
	r, size := c.PeekRune()
	if size == 0 {
		return 0
	}
	if r == utf8.RuneError && size == 1 {
		// битый байт: один байт, одна колонка
		c.Pos.Offset++
		c.Pos.Col++
		return r
	}
	c.Pos = c.Pos.Advance(r)
	return r
}

// Mark это метка, чтобы быстро получать Span читаемого фрагмента.
type Mark source.Position

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Pos)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.NewSpan(c.File.ID, source.Position(m), c.Pos)
}

// TextFrom returns the source text between the mark and the cursor.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[m.Offset:c.Pos.Offset])
}

// Eat consumes the next byte if it matches the provided ASCII byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Pos.Offset] == b {
		c.Bump()
		return true
	}
	return false
}
