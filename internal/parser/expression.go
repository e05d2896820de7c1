package parser

import (
	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, *diag.Diagnostic) {
	return p.parseTier(0)
}

// parseTier разбирает уровень tier: левый операнд из следующего уровня,
// затем пока текущий токен — оператор этого уровня, сворачиваем влево.
func (p *Parser) parseTier(tier int) (ast.ExprID, *diag.Diagnostic) {
	if tier == len(binaryTiers) {
		return p.parseFactor()
	}

	left, err := p.parseTier(tier + 1)
	if err != nil {
		return ast.NoExprID, err
	}
	for tierHas(tier, p.peek().Kind) {
		opTok := p.advance()
		right, err := p.parseTier(tier + 1)
		if err != nil {
			return ast.NoExprID, err
		}
		left = p.tree.Exprs.NewBinary(tokenKindToBinaryOp(opTok.Kind), left, right)
	}
	return left, nil
}

// parseFactor: var-присваивание, имя, скобки, унарный минус или число.
func (p *Parser) parseFactor() (ast.ExprID, *diag.Diagnostic) {
	exprs := p.tree.Exprs
	tok := p.peek()

	switch tok.Kind {
	case token.KwVar:
		return p.parseAssign()

	case token.Ident:
		p.advance()
		return exprs.NewIdent(tok.Span, tok.Text), nil

	case token.LParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return ast.NoExprID, err
		}
		if _, err := p.expect(token.RParen, diag.SynUnclosedParen, "Expected ')'"); err != nil {
			return ast.NoExprID, err
		}
		// скобки не создают узел: span остаётся у внутреннего выражения
		return inner, nil

	case token.Minus:
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return ast.NoExprID, err
		}
		span := tok.Span.Cover(exprs.Get(operand).Span)
		return exprs.NewUnary(span, ast.ExprUnaryMinus, operand), nil

	case token.IntLit:
		p.advance()
		return exprs.NewInt(tok.Span, tok.Text, tok.Int), nil

	case token.FloatLit:
		p.advance()
		return exprs.NewFloat(tok.Span, tok.Text, tok.Float), nil
	}

	return ast.NoExprID, p.errorf(diag.SynUnexpectedToken, "Expected int, float, identifier, 'var', '-' or '('")
}

// parseAssign разбирает `var IDENT = expr`; span от ключевого слова до конца значения.
func (p *Parser) parseAssign() (ast.ExprID, *diag.Diagnostic) {
	kw := p.advance()
	name, err := p.expect(token.Ident, diag.SynExpectIdentifier, "Expected identifier")
	if err != nil {
		return ast.NoExprID, err
	}
	if _, err := p.expect(token.Assign, diag.SynExpectAssign, "Expected '='"); err != nil {
		return ast.NoExprID, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return ast.NoExprID, err
	}
	exprs := p.tree.Exprs
	span := kw.Span.Cover(exprs.Get(value).Span)
	return exprs.NewAssign(span, name.Text, name.Span, value), nil
}
