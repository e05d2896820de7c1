package interp

import (
	"math"
	"strconv"
	"strings"

	"tally/internal/source"
)

// Number is the only runtime value: an int64 or a float64.
// Span is the node that produced it; Context is the frame it was produced in
// and is used only to attribute errors.
type Number struct {
	isFloat bool
	i       int64
	f       float64

	Span    source.Span
	Context *Context
}

// Int makes an integer number.
func Int(v int64) Number { return Number{i: v} }

// Float makes a float number.
func Float(v float64) Number { return Number{isFloat: true, f: v} }

func (n Number) IsFloat() bool { return n.isFloat }

// Int64 returns the integer payload; floats are truncated toward zero.
func (n Number) Int64() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

// Float64 returns the value as float64.
func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

// IsZero reports an exact zero: int 0, +0.0 or -0.0.
func (n Number) IsZero() bool {
	if n.isFloat {
		return n.f == 0
	}
	return n.i == 0
}

// Equal compares values, ignoring span and context; 2 and 2.0 are different.
func (n Number) Equal(other Number) bool {
	if n.isFloat != other.isFloat {
		return false
	}
	if n.isFloat {
		return n.f == other.f || (math.IsNaN(n.f) && math.IsNaN(other.f))
	}
	return n.i == other.i
}

// at returns a copy stamped with span and ctx.
func (n Number) at(span source.Span, ctx *Context) Number {
	n.Span = span
	n.Context = ctx
	return n
}

// String formats integers in decimal and floats in shortest round-trip form,
// always showing a fractional part or exponent: 2.0, 0.1, 1e+16, 1e-05, inf.
func (n Number) String() string {
	if !n.isFloat {
		return strconv.FormatInt(n.i, 10)
	}
	return formatFloat(n.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if f == 0 {
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	// десятичный порядок берём из кратчайшей 'e' формы
	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp := 0
	if i := strings.IndexByte(sci, 'e'); i >= 0 {
		exp, _ = strconv.Atoi(sci[i+1:])
	}
	if exp < -4 || exp >= 16 {
		return sci
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
