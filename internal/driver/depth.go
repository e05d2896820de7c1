package driver

import (
	"tally/internal/diag"
	"tally/internal/token"
)

// DefaultMaxDepth bounds parser recursion for untrusted input.
const DefaultMaxDepth = 256

type depthLevel struct {
	unary int // prefix '-' waiting for their operand
	vars  int // open `var` assignments; they close with the level
}

// CheckDepth estimates how deep the parser will recurse on tokens and fails
// on the first token that pushes the nesting past limit. Parentheses, prefix
// minus chains and `var` chains each add a level. limit <= 0 disables the check.
func CheckDepth(tokens []token.Token, limit int) *diag.Diagnostic {
	if limit <= 0 {
		return nil
	}
	levels := []depthLevel{{}}
	depth := 0
	prevVar := false

	exceeded := func(tok token.Token) *diag.Diagnostic {
		return diag.New(diag.SynTooDeep, tok.Span, "expression nested too deeply")
	}
	// операнд закрывает висящие унарные минусы текущего уровня
	closeOperand := func() {
		top := &levels[len(levels)-1]
		depth -= top.unary
		top.unary = 0
	}

	prev := token.Invalid
	for _, tok := range tokens {
		wasVar := prevVar
		prevVar = false
		switch tok.Kind {
		case token.LParen:
			levels = append(levels, depthLevel{})
			depth++
		case token.RParen:
			if len(levels) == 1 {
				continue // лишняя скобка - ошибку выдаст парсер
			}
			top := levels[len(levels)-1]
			levels = levels[:len(levels)-1]
			depth -= 1 + top.unary + top.vars
			closeOperand()
		case token.Minus:
			if !endsOperand(prev) {
				levels[len(levels)-1].unary++
				depth++
			}
		case token.KwVar:
			levels[len(levels)-1].vars++
			depth++
			prevVar = true
		case token.Ident:
			if !wasVar {
				closeOperand()
			}
		case token.IntLit, token.FloatLit:
			closeOperand()
		}
		if depth > limit {
			return exceeded(tok)
		}
		prev = tok.Kind
	}
	return nil
}

// endsOperand reports whether a token of kind k can end an operand,
// which makes a following '-' binary.
func endsOperand(k token.Kind) bool {
	switch k {
	case token.IntLit, token.FloatLit, token.Ident, token.RParen:
		return true
	}
	return false
}
