package interp

import (
	"tally/internal/ast"
	"tally/internal/diag"
)

// Session keeps bindings across several evaluations, one tree per REPL line.
// Each evaluation still starts from a fresh root frame.
type Session struct {
	Name    string
	symbols *SymbolTable
	opts    Options
}

// NewSession creates a session whose root frames are named name.
func NewSession(name string, opts Options) *Session {
	if name == "" {
		name = DefaultRootName
	}
	return &Session{Name: name, symbols: NewSymbolTable(), opts: opts}
}

// Eval evaluates tree. Bindings made by a line are committed only when the
// whole line succeeds; a failed line leaves the session untouched.
func (s *Session) Eval(tree *ast.Tree) (Number, *diag.Diagnostic) {
	return s.EvalWith(tree, s.opts)
}

// Symbols exposes the session bindings.
func (s *Session) Symbols() *SymbolTable { return s.symbols }

// Reset drops every binding.
func (s *Session) Reset() { s.symbols = NewSymbolTable() }

// EvalWith is Eval with per-call options, e.g. a tracer bound to the caller's span.
func (s *Session) EvalWith(tree *ast.Tree, opts Options) (Number, *diag.Diagnostic) {
	pending := s.symbols.clone()
	v, err := New(pending, opts).Eval(tree, NewRootContext(s.Name))
	if err != nil {
		return Number{}, err
	}
	s.symbols = pending
	return v, nil
}
