// Package token defines lexical token kinds for tally.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - Numeric tokens carry their decoded payload (Int or Float).
//   - A successful token stream ends with exactly one EOF token whose span is zero-width.
//   - Keywords are case-sensitive: only "var" is reserved.
package token
