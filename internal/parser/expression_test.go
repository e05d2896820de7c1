package parser_test

import (
	"testing"

	"tally/internal/ast"
	"tally/internal/diag"
	"tally/internal/parser"
	"tally/internal/token"
)

func TestParseShapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"1.5", "1.5f"},
		{"x", "x"},
		{"2 + 3 * 4", "(+ 2 (* 3 4))"},
		{"(2 + 3) * 4", "(* (+ 2 3) 4)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 4 / 2", "(/ (/ 8 4) 2)"},
		{"--5", "(neg (neg 5))"},
		{"-2 * 3", "(* (neg 2) 3)"},
		{"2 * -3", "(* 2 (neg 3))"},
		{"-(1 + 2)", "(neg (+ 1 2))"},
		{"var a = 1 + 2", "(var a (+ 1 2))"},
		{"var a = var b = 3", "(var a (var b 3))"},
		{"1 + var a = 2 * 3", "(+ 1 (var a (* 2 3)))"},
		{"((((7))))", "7"},
		{"a * b - c / d", "(- (* a b) (/ c d))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := mustParse(t, tt.input)
			if got := sexpr(tree, tree.Root); got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSpans(t *testing.T) {
	tests := []struct {
		input string
		want  string // текст корневого span
	}{
		{"2 + 3 * 4", "2 + 3 * 4"},
		{"  (2 + 3) ", "2 + 3"},
		{"-x", "-x"},
		{"- (1)", "- (1"},
		{"var long = 10 * 2", "var long = 10 * 2"},
		{"(1) * 2", "1) * 2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := mustParse(t, tt.input)
			if got := spanText(tt.input, tree.Span()); got != tt.want {
				t.Errorf("root span text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpansCoverChildren(t *testing.T) {
	tree := mustParse(t, "var r = -(a + 2.5) * (b - 1) / 3")
	tree.Walk(func(id ast.ExprID, _ int) bool {
		parent := tree.Exprs.Get(id).Span
		if !parent.Valid() {
			t.Errorf("invalid span %v", parent)
		}
		for _, child := range tree.Exprs.Children(id) {
			if !parent.Contains(tree.Exprs.Get(child).Span) {
				t.Errorf("node %d span %v does not contain child %v", id, parent, tree.Exprs.Get(child).Span)
			}
		}
		return true
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		code   diag.Code
		offset uint32
		empty  bool
	}{
		{"unclosed paren at end", "(1 + 2", diag.SynUnclosedParen, 6, true},
		{"unclosed paren before token", "(1 2", diag.SynUnclosedParen, 3, false},
		{"dangling operator", "1 +", diag.SynUnexpectedToken, 3, true},
		{"empty input", "", diag.SynUnexpectedToken, 0, true},
		{"leading star", "* 2", diag.SynUnexpectedToken, 0, false},
		{"stray rparen", ")", diag.SynUnexpectedToken, 0, false},
		{"unary plus unsupported", "+1", diag.SynUnexpectedToken, 0, false},
		{"var without name", "var = 1", diag.SynExpectIdentifier, 4, false},
		{"var without equals", "var a 1", diag.SynExpectAssign, 6, false},
		{"var without value", "var a =", diag.SynUnexpectedToken, 7, true},
		{"trailing number", "1 2", diag.SynTrailingInput, 2, false},
		{"trailing paren", "(1))", diag.SynTrailingInput, 3, false},
		{"assign to number", "var 1 = 2", diag.SynExpectIdentifier, 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parseSource(t, tt.input)
			if err == nil {
				t.Fatalf("expected error, got tree %s", sexpr(tree, tree.Root))
			}
			if tree != nil {
				t.Errorf("failed parse must not return a tree")
			}
			if err.Kind != diag.InvalidSyntax {
				t.Errorf("kind = %v", err.Kind)
			}
			if err.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", err.Code.ID(), tt.code.ID(), err.Message)
			}
			if err.Span.Start.Offset != tt.offset {
				t.Errorf("offset = %d, want %d", err.Span.Start.Offset, tt.offset)
			}
			if err.Span.Empty() != tt.empty {
				t.Errorf("span %v empty=%v, want %v", err.Span, err.Span.Empty(), tt.empty)
			}
		})
	}
}

func TestParseErrorMessages(t *testing.T) {
	_, err := parseSource(t, "(1 + 2")
	if err == nil || trimSpaces(err.Message) != "Expected ')', got end of input" {
		t.Fatalf("message = %v", err)
	}
	_, err = parseSource(t, "1 2")
	if err == nil || err.Message != "Expected '+', '-', '*' or '/', got integer" {
		t.Fatalf("message = %v", err)
	}
}

func TestParseWithoutEOFToken(t *testing.T) {
	// Срез без EOF: парсер подставляет синтетический EOF после последнего токена.
	tree, err := parser.Parse([]token.Token{{Kind: token.IntLit, Text: "1", Int: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sexpr(tree, tree.Root) != "1" {
		t.Fatalf("unexpected tree %s", sexpr(tree, tree.Root))
	}
	if _, err := parser.Parse(nil); err == nil {
		t.Fatalf("empty token slice must fail")
	}
}

func TestParseIsDeterministic(t *testing.T) {
	a := mustParse(t, "var z = 1 + 2 * (3 - -4)")
	b := mustParse(t, "var z = 1 + 2 * (3 - -4)")
	if sexpr(a, a.Root) != sexpr(b, b.Root) || a.Exprs.Len() != b.Exprs.Len() {
		t.Fatalf("two parses differ")
	}
}
