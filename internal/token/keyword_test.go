package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	got, ok := LookupKeyword("var")
	if !ok || got != KwVar {
		t.Fatalf("LookupKeyword(%q) = %v,%v; want KwVar,true", "var", got, ok)
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// регистр важен
	for _, lexeme := range []string{"VAR", "Var", "vars", "let", "x", ""} {
		if k, ok := LookupKeyword(lexeme); ok {
			t.Fatalf("LookupKeyword(%q) = %v, want !ok", lexeme, k)
		}
	}
}

func TestLookupOperator(t *testing.T) {
	cases := map[byte]Kind{
		'+': Plus, '-': Minus, '*': Star, '/': Slash,
		'=': Assign, '(': LParen, ')': RParen,
	}
	for ch, want := range cases {
		got, ok := LookupOperator(ch)
		if !ok || got != want {
			t.Errorf("LookupOperator(%q) = %v,%v; want %v", ch, got, ok, want)
		}
	}
	for _, ch := range []byte{'$', '.', '%', ' ', 'a'} {
		if _, ok := LookupOperator(ch); ok {
			t.Errorf("LookupOperator(%q) should fail", ch)
		}
	}
}
