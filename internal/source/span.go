package source

import (
	"fmt"
)

// Span is a half-open range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start Position // включительно
	End   Position // не включительно
}

// NewSpan builds a span; start and end are copied.
func NewSpan(file FileID, start, end Position) Span {
	return Span{File: file, Start: start, End: end}
}

// PointSpan returns a zero-width span at pos.
func PointSpan(file FileID, pos Position) Span {
	return Span{File: file, Start: pos, End: pos}
}

func (s Span) Empty() bool {
	return s.Start.Offset == s.End.Offset
}

// Len returns the span length in bytes.
func (s Span) Len() uint32 {
	return s.End.Offset - s.Start.Offset
}

// Valid reports whether start does not come after end.
func (s Span) Valid() bool {
	return s.Start.Offset <= s.End.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%s-%s", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start.Offset < s.Start.Offset {
		s.Start = other.Start
	}
	if other.End.Offset > s.End.Offset {
		s.End = other.End
	}
	return s
}

// Contains reports whether other lies within s.
func (s Span) Contains(other Span) bool {
	return s.File == other.File &&
		s.Start.Offset <= other.Start.Offset &&
		other.End.Offset <= s.End.Offset
}

// Lines returns the 0-based first and last line touched by the span.
func (s Span) Lines() (first, last uint32) {
	return s.Start.Line, s.End.Line
}
