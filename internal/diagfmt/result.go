package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"tally/internal/diag"
	"tally/internal/source"
)

// ResultOutput is the machine form of one evaluated program.
type ResultOutput struct {
	Source     string          `json:"source" msgpack:"source"`
	Value      string          `json:"value,omitempty" msgpack:"value,omitempty"`
	Type       string          `json:"type,omitempty" msgpack:"type,omitempty"` // int | float
	Diagnostic *DiagnosticJSON `json:"diagnostic,omitempty" msgpack:"diagnostic,omitempty"`
}

// Value is what the printer needs from an evaluation result.
type Value interface {
	fmt.Stringer
	IsFloat() bool
}

// BuildResultOutput describes either a value or the failing diagnostic.
func BuildResultOutput(name string, v Value, d *diag.Diagnostic, fs *source.FileSet) ResultOutput {
	out := ResultOutput{Source: name}
	if d != nil {
		dj := BuildDiagnosticsOutput([]*diag.Diagnostic{d}, fs, JSONOpts{IncludePositions: true}).Diagnostics[0]
		out.Diagnostic = &dj
		return out
	}
	if v != nil {
		out.Value = v.String()
		out.Type = "int"
		if v.IsFloat() {
			out.Type = "float"
		}
	}
	return out
}

// WriteResults prints results: pretty writes one value per line and
// diagnostics through Pretty, json and msgpack write an array.
func WriteResults(w io.Writer, format Format, results []ResultOutput) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(results)
	}
	for _, r := range results {
		var err error
		if r.Diagnostic != nil {
			_, err = fmt.Fprintf(w, "%s: %s [%s]\n", r.Source, r.Diagnostic.Message, r.Diagnostic.Code)
		} else {
			_, err = fmt.Fprintf(w, "%s: %s\n", r.Source, r.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
