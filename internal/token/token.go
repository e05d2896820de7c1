package token

import (
	"strconv"

	"tally/internal/source"
)

// Token represents a single source token with its location and decoded payload.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Int   int64   // IntLit
	Float float64 // FloatLit
}

// IsLiteral reports whether the token is a numeric literal.
func (t Token) IsLiteral() bool {
	return t.Kind == IntLit || t.Kind == FloatLit
}

// IsOperator reports whether the token is an arithmetic operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is '=', '(' or ')'.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Assign, LParen, RParen:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind == KwVar }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Value renders the decoded payload: integers in decimal, floats in shortest form.
func (t Token) Value() string {
	switch t.Kind {
	case IntLit:
		return strconv.FormatInt(t.Int, 10)
	case FloatLit:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	default:
		return t.Text
	}
}

func (t Token) String() string {
	switch t.Kind {
	case IntLit, FloatLit, Ident:
		return t.Kind.String() + ":" + t.Value()
	default:
		return t.Kind.String()
	}
}
