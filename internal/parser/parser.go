package parser

import (
	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/source"
	"tally/internal/token"
)

// Parser — состояние парсера на один поток токенов.
// Одна лексема lookahead, строго слева направо, без отката.
type Parser struct {
	toks []token.Token
	pos  int
	tree *ast.Tree
}

// Parse builds an expression tree from a token stream ending in EOF.
// The first unexpected token aborts parsing; no partial tree is returned.
func Parse(tokens []token.Token) (*ast.Tree, *diag.Diagnostic) {
	var file source.FileID
	if len(tokens) > 0 {
		file = tokens[0].Span.File
	}
	p := &Parser{
		toks: tokens,
		tree: ast.NewTree(file, uint(len(tokens))),
	}

	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.at(token.EOF) {
		return nil, p.errorf(diag.SynTrailingInput, "Expected '+', '-', '*' or '/'")
	}
	p.tree.Root = root
	return p.tree, nil
}

// peek возвращает текущий токен; за концом среза — синтетический EOF.
func (p *Parser) peek() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	if len(p.toks) == 0 {
		return token.Token{Kind: token.EOF}
	}
	last := p.toks[len(p.toks)-1].Span
	return token.Token{Kind: token.EOF, Span: source.PointSpan(last.File, last.End)}
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// advance — съедает текущий токен; EOF не съедается.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

// expect — ожидаем конкретный токен, иначе ошибка на текущем токене.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, *diag.Diagnostic) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorf(code, msg)
}

// errorf builds an InvalidSyntax diagnostic at the current token.
func (p *Parser) errorf(code diag.Code, msg string) *diag.Diagnostic {
	cur := p.peek()
	return diag.New(code, cur.Span, msg+", got "+cur.Kind.Describe())
}
