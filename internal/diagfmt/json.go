package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"tally/internal/diag"
	"tally/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file" msgpack:"file"`
	StartByte uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" msgpack:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty" msgpack:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty" msgpack:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

// FrameJSON is one traceback entry.
type FrameJSON struct {
	Name string `json:"name" msgpack:"name"`
	Line uint32 `json:"line" msgpack:"line"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Kind      string       `json:"kind" msgpack:"kind"`
	Code      string       `json:"code" msgpack:"code"`
	Message   string       `json:"message" msgpack:"message"`
	Location  LocationJSON `json:"location" msgpack:"location"`
	Traceback []FrameJSON  `json:"traceback,omitempty" msgpack:"traceback,omitempty"`
	Excerpt   string       `json:"excerpt,omitempty" msgpack:"excerpt,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" msgpack:"count"`
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) LocationJSON {
	loc := LocationJSON{
		StartByte: span.Start.Offset,
		EndByte:   span.End.Offset,
	}
	if fs != nil && int(span.File) < fs.Len() {
		loc.File = formatPath(fs.Get(span.File), fs, pathMode)
	}

	// позиции в JSON 1-based, как в редакторах
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру вывода без сериализации.
func BuildDiagnosticsOutput(diags []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}

	out := make([]DiagnosticJSON, 0, n)
	for _, d := range diags[:n] {
		dj := DiagnosticJSON{
			Kind:     d.Kind.Slug(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: makeLocation(d.Span, fs, opts.PathMode, opts.IncludePositions),
		}
		if d.HasTraceback() {
			dj.Traceback = make([]FrameJSON, len(d.Traceback))
			for i, fr := range d.Traceback {
				dj.Traceback[i] = FrameJSON{Name: fr.Name, Line: fr.Span.Start.Line + 1}
			}
		}
		if fs != nil && int(d.Span.File) < fs.Len() {
			dj.Excerpt = StringWithArrows(fs.Get(d.Span.File), d.Span)
		}
		out = append(out, dj)
	}
	return DiagnosticsOutput{Diagnostics: out, Count: len(out)}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(diags, fs, opts))
}

// Msgpack writes the same structure as JSON in msgpack encoding.
func Msgpack(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	return msgpack.NewEncoder(w).Encode(BuildDiagnosticsOutput(diags, fs, opts))
}

// WriteDiagnostics dispatches on format.
func WriteDiagnostics(w io.Writer, format Format, diags []*diag.Diagnostic, fs *source.FileSet, color bool) error {
	switch format {
	case FormatJSON:
		return JSON(w, diags, fs, JSONOpts{IncludePositions: true})
	case FormatMsgpack:
		return Msgpack(w, diags, fs, JSONOpts{IncludePositions: true})
	default:
		return Pretty(w, diags, fs, PrettyOpts{Color: color})
	}
}
