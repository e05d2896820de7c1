package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/lexer"
	"tally/internal/parser"
	"tally/internal/source"
)

func parseSource(t *testing.T, input string) (*ast.Tree, *diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	toks, lexErr := lexer.TokenizeSource(fs, "test.tly", input)
	if lexErr != nil {
		t.Fatalf("tokenize %q: %v", input, lexErr)
	}
	return parser.Parse(toks)
}

func mustParse(t *testing.T, input string) *ast.Tree {
	t.Helper()
	tree, err := parseSource(t, input)
	if err != nil {
		t.Fatalf("parse %q: [%s] %s at %v", input, err.Code.ID(), err.Message, err.Span)
	}
	return tree
}

// sexpr рендерит дерево в компактную скобочную форму для сравнения.
func sexpr(tree *ast.Tree, id ast.ExprID) string {
	e := tree.Exprs
	switch e.Get(id).Kind {
	case ast.ExprNumber:
		n, _ := e.Number(id)
		if n.IsFloat {
			return fmt.Sprintf("%gf", n.Float)
		}
		return fmt.Sprintf("%d", n.Int)
	case ast.ExprIdent:
		d, _ := e.Ident(id)
		return d.Name
	case ast.ExprAssign:
		d, _ := e.Assign(id)
		return "(var " + d.Name + " " + sexpr(tree, d.Value) + ")"
	case ast.ExprUnary:
		d, _ := e.Unary(id)
		return "(neg " + sexpr(tree, d.Operand) + ")"
	case ast.ExprBinary:
		d, _ := e.Binary(id)
		return "(" + d.Op.String() + " " + sexpr(tree, d.Left) + " " + sexpr(tree, d.Right) + ")"
	}
	return "?"
}

func spanText(input string, sp source.Span) string {
	return input[sp.Start.Offset:sp.End.Offset]
}

func trimSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
