package interp

import (
	"tally/internal/ast"
	"tally/internal/diag"
)

// arithError is an arithmetic failure before it is placed in a frame.
type arithError struct {
	code      diag.Code
	msg       string
	atOperand bool // span of the right operand instead of the whole node
}

func (e *arithError) Error() string { return e.msg }

var (
	errDivisionByZero = &arithError{code: diag.RunDivisionByZero, msg: "Division by zero", atOperand: true}
	errIntOverflow    = &arithError{code: diag.RunIntegerOverflow, msg: "Integer overflow"}
)

// apply evaluates left op right. Integers stay integers for + - * and are
// checked for overflow; any float operand promotes the result to float.
// Division always yields a float and rejects an exact zero divisor.
func apply(op ast.ExprBinaryOp, left, right Number) (Number, *arithError) {
	if op == ast.ExprBinaryDiv {
		if right.IsZero() {
			return Number{}, errDivisionByZero
		}
		return Float(left.Float64() / right.Float64()), nil
	}

	if left.isFloat || right.isFloat {
		a, b := left.Float64(), right.Float64()
		switch op {
		case ast.ExprBinaryAdd:
			return Float(a + b), nil
		case ast.ExprBinarySub:
			return Float(a - b), nil
		case ast.ExprBinaryMul:
			return Float(a * b), nil
		}
		panic("interp: unknown binary operator " + op.String())
	}

	var (
		res int64
		ok  bool
	)
	switch op {
	case ast.ExprBinaryAdd:
		res, ok = addInt64Checked(left.i, right.i)
	case ast.ExprBinarySub:
		res, ok = subInt64Checked(left.i, right.i)
	case ast.ExprBinaryMul:
		res, ok = mulInt64Checked(left.i, right.i)
	default:
		panic("interp: unknown binary operator " + op.String())
	}
	if !ok {
		return Number{}, errIntOverflow
	}
	return Int(res), nil
}

// negate multiplies by -1.
// -MinInt64 overflows like any other product.
func negate(n Number) (Number, *arithError) {
	return apply(ast.ExprBinaryMul, n, Int(-1))
}
