package ast

import (
	"tally/internal/source"
)

// ExprKind is the closed set of expression nodes.
type ExprKind uint8

const (
	// ExprNumber is an integer or float literal.
	ExprNumber ExprKind = iota + 1
	// ExprAssign is `var name = value`.
	ExprAssign
	// ExprIdent reads a variable.
	ExprIdent
	// ExprUnary is a prefix operator applied to one operand.
	ExprUnary
	// ExprBinary is a left-associative arithmetic operation.
	ExprBinary
)

func (k ExprKind) String() string {
	switch k {
	case ExprNumber:
		return "Number"
	case ExprAssign:
		return "VarAssign"
	case ExprIdent:
		return "VarAccess"
	case ExprUnary:
		return "UnaryOp"
	case ExprBinary:
		return "BinOp"
	}
	return "Invalid"
}

// Expr represents an expression node in the AST.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprBinaryOp enumerates binary operator kinds.
type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	}
	return "?"
}

// ExprUnaryOp enumerates prefix operators; only negation exists.
type ExprUnaryOp uint8

const (
	ExprUnaryMinus ExprUnaryOp = iota
)

func (op ExprUnaryOp) String() string {
	if op == ExprUnaryMinus {
		return "-"
	}
	return "?"
}

// ExprNumberData holds the decoded literal.
type ExprNumberData struct {
	IsFloat bool
	Int     int64
	Float   float64
	Text    string
}

// ExprAssignData binds Name to the value of Value.
type ExprAssignData struct {
	Name     string
	NameSpan source.Span
	Value    ExprID
}

// ExprIdentData names the variable being read.
type ExprIdentData struct {
	Name string
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}
