package diag

import (
	"tally/internal/source"
)

// Frame is one entry of a runtime traceback.
// Span is where the frame was entered; for the innermost frame it is the error site.
type Frame struct {
	Name string
	Span source.Span
}

type Diagnostic struct {
	Kind      Kind
	Code      Code
	Message   string
	Span      source.Span
	Traceback []Frame // root first, RuntimeError only
}

// New builds a diagnostic whose kind follows from code.
func New(code Code, span source.Span, msg string) *Diagnostic {
	return &Diagnostic{Kind: code.Kind(), Code: code, Message: msg, Span: span}
}

// Runtime builds a RuntimeError with its traceback.
func Runtime(code Code, span source.Span, msg string, frames []Frame) *Diagnostic {
	d := New(code, span, msg)
	d.Kind = RuntimeError
	d.Traceback = frames
	return d
}

// Error returns the one-line header, so a Diagnostic can travel as an error.
func (d *Diagnostic) Error() string {
	return d.Kind.String() + ": " + d.Message
}

// HasTraceback reports whether the diagnostic carries context frames.
func (d *Diagnostic) HasTraceback() bool {
	return d.Kind == RuntimeError && len(d.Traceback) > 0
}
