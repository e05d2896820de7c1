package parser

import (
	"tally/internal/ast"
	"tally/internal/token"
)

// Уровни приоритета от низшего к высшему; после последнего идёт factor.
// Все бинарные операторы левоассоциативны.
var binaryTiers = [...][]token.Kind{
	{token.Plus, token.Minus}, // expr
	{token.Star, token.Slash}, // term
}

func tierHas(tier int, k token.Kind) bool {
	for _, op := range binaryTiers[tier] {
		if op == k {
			return true
		}
	}
	return false
}

// tokenKindToBinaryOp преобразует токен в тип бинарного оператора
func tokenKindToBinaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.ExprBinaryAdd
	case token.Minus:
		return ast.ExprBinarySub
	case token.Star:
		return ast.ExprBinaryMul
	case token.Slash:
		return ast.ExprBinaryDiv
	}
	panic("parser: not a binary operator: " + kind.String())
}
