package diagfmt

import (
	"strings"
	"unicode/utf8"

	"tally/internal/source"
)

// StringWithArrows renders the source lines covered by span, each followed by
// a caret line: spaces up to the start column, then '^' over the covered
// columns, at least one even for an empty span. Tabs are removed after the
// carets are placed, so lines with tabs may misalign.
func StringWithArrows(file *source.File, span source.Span) string {
	if file == nil {
		return ""
	}
	first, last := span.Lines()
	if last < first {
		last = first
	}

	var b strings.Builder
	for line := first; line <= last; line++ {
		text := file.LineText(line)
		startCol := 0
		if line == first {
			startCol = int(span.Start.Col)
		}
		endCol := utf8.RuneCountInString(text)
		if line == last {
			endCol = int(span.End.Col)
		}
		carets := max(endCol-startCol, 1)

		if line > first {
			b.WriteByte('\n')
		}
		b.WriteString(text)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", startCol))
		b.WriteString(strings.Repeat("^", carets))
	}
	return strings.ReplaceAll(b.String(), "\t", "")
}
