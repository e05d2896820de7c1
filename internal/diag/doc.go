// Package diag defines the diagnostic model shared by the lexer, the parser and the interpreter.
//
// # Data model
//
// Diagnostic is one struct tagged by Kind:
//
//   - IllegalCharacter – produced by the lexer on the first unrecognised character.
//   - InvalidSyntax – produced by the parser on the first unexpected token.
//   - RuntimeError – produced by the interpreter; the only kind with a Traceback.
//
// Every diagnostic carries a Code (numeric, stable string form LEX/SYN/RUN),
// a short Message and the source.Span it points at. Traceback frames are stored
// root first, matching the order in which they are printed.
//
// The pipeline stops at the first diagnostic, so producers return a single
// *Diagnostic rather than reporting into a sink. Bag collects diagnostics of
// many independent inputs (batch runs) for sorting and short output.
//
// # Scope
//
// Package diag does not format excerpts or touch IO. Caret rendering, colours and
// JSON live in internal/diagfmt.
package diag
