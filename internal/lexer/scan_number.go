package lexer

import (
	"errors"
	"strconv"

	"tally/internal/diag"
	"tally/internal/token"
)

// scanNumber читает цифры и не более одной точки.
// Вторая точка не ошибка: она просто завершает число, "1.2.3" → 1.2 и .3.
// Без точки → IntLit (int64), с точкой → FloatLit ("1." == 1.0, ".5" == 0.5).
func (lx *Lexer) scanNumber() (token.Token, *diag.Diagnostic) {
	start := lx.cursor.Mark()
	dots := 0
	for {
		if isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
			continue
		}
		if dots == 0 && lx.cursor.Eat('.') {
			dots++
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.cursor.TextFrom(start)

	if dots == 0 {
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return token.Token{}, diag.New(diag.LexBadNumber, sp, "integer literal out of range")
		}
		return token.Token{Kind: token.IntLit, Span: sp, Text: text, Int: v}, nil
	}

	v, err := strconv.ParseFloat(text, 64)
	// слишком длинная мантисса даёт ±Inf вместе с ErrRange, это не ошибка
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return token.Token{}, diag.New(diag.LexBadNumber, sp, "malformed float literal")
	}
	return token.Token{Kind: token.FloatLit, Span: sp, Text: text, Float: v}, nil
}
