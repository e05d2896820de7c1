package ast

import (
	"tally/internal/source"
)

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena    *Arena[Expr]
	Numbers  *Arena[ExprNumberData]
	Assigns  *Arena[ExprAssignData]
	Idents   *Arena[ExprIdentData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
}

// NewExprs creates arenas preallocated with capHint slots (default 1<<6).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Numbers:  NewArena[ExprNumberData](capHint),
		Assigns:  NewArena[ExprAssignData](capHint / 4),
		Idents:   NewArena[ExprIdentData](capHint / 2),
		Unaries:  NewArena[ExprUnaryData](capHint / 4),
		Binaries: NewArena[ExprBinaryData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

// Get returns the expression with the given ID, or nil.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// Len returns the number of allocated nodes.
func (e *Exprs) Len() uint32 {
	return e.Arena.Len()
}

// NewInt creates an integer literal.
func (e *Exprs) NewInt(span source.Span, text string, v int64) ExprID {
	payload := e.Numbers.Allocate(ExprNumberData{Int: v, Text: text})
	return e.new(ExprNumber, span, payload)
}

// NewFloat creates a float literal.
func (e *Exprs) NewFloat(span source.Span, text string, v float64) ExprID {
	payload := e.Numbers.Allocate(ExprNumberData{IsFloat: true, Float: v, Text: text})
	return e.new(ExprNumber, span, payload)
}

// Number returns the literal data for the given expression ID.
func (e *Exprs) Number(id ExprID) (*ExprNumberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprNumber {
		return nil, false
	}
	return e.Numbers.Get(uint32(expr.Payload)), true
}

// NewAssign creates `var name = value`; span covers the keyword through the value.
func (e *Exprs) NewAssign(span source.Span, name string, nameSpan source.Span, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Name: name, NameSpan: nameSpan, Value: value})
	return e.new(ExprAssign, span, payload)
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}

// NewIdent creates a variable access.
func (e *Exprs) NewIdent(span source.Span, name string) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, payload)
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewUnary creates a prefix operation.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, payload)
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewBinary creates a binary expression; span is the cover of both operands.
func (e *Exprs) NewBinary(op ExprBinaryOp, left, right ExprID) ExprID {
	span := e.Get(left).Span.Cover(e.Get(right).Span)
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, payload)
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// Children returns the direct children of id in source order.
func (e *Exprs) Children(id ExprID) []ExprID {
	expr := e.Get(id)
	if expr == nil {
		return nil
	}
	switch expr.Kind {
	case ExprAssign:
		data, _ := e.Assign(id)
		return []ExprID{data.Value}
	case ExprUnary:
		data, _ := e.Unary(id)
		return []ExprID{data.Operand}
	case ExprBinary:
		data, _ := e.Binary(id)
		return []ExprID{data.Left, data.Right}
	default:
		return nil
	}
}
