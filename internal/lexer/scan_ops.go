package lexer

import (
	"tally/internal/diag"
	"tally/internal/token"
)

// Все операторы односимвольные, жадность не нужна.
func (lx *Lexer) scanOperatorOrPunct() (token.Token, *diag.Diagnostic) {
	k, ok := token.LookupOperator(lx.cursor.Peek())
	if !ok {
		return token.Token{}, lx.illegal()
	}
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return token.Token{
		Kind: k,
		Span: lx.cursor.SpanFrom(start),
		Text: lx.cursor.TextFrom(start),
	}, nil
}
