// Copyright © 2026 The LISPE authors

package lisp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberType is a level of the numeric tower.  Higher levels can represent
// every value of the lower ones.
type NumberType uint8

const (
	NumReal NumberType = iota
	NumComplex
	numTypes
)

func (t NumberType) String() string {
	switch t {
	case NumReal:
		return "real"
	case NumComplex:
		return "complex"
	}
	return "invalid"
}

// ArithOp is a binary arithmetic operator.
type ArithOp uint8

const (
	OpAdd ArithOp = iota
	OpSub
	OpMul
	OpDiv
	arithOps
)

// LogicOp is a binary numeric comparison.
type LogicOp uint8

const (
	OpEqual LogicOp = iota
	OpGreater
	OpLess
	OpGreaterEqual
	OpLessEqual
	logicOps
)

// maxExactInt is the largest magnitude a float64 integer can hold without
// losing precision.
const maxExactInt = 1<<53 - 1

// Number is a boxed numeric payload stored in the number arena.
type Number struct {
	Type NumberType
	val  complex128
}

// BuildReal returns a real number.
func BuildReal(x float64) Number {
	return Number{Type: NumReal, val: complex(x, 0)}
}

// BuildComplex returns a complex number.  The result stays complex even when
// im is zero.
func BuildComplex(re, im float64) Number {
	return Number{Type: NumComplex, val: complex(re, im)}
}

// Real returns the real part of n.
func (n Number) Real() float64 { return real(n.val) }

// Imag returns the imaginary part of n, which is always zero for reals.
func (n Number) Imag() float64 { return imag(n.val) }

// Complex returns n as a complex128.
func (n Number) Complex() complex128 { return n.val }

// IsReal reports whether n is mathematically real.
func (n Number) IsReal() bool {
	return n.Type == NumReal || imag(n.val) == 0
}

// IsInteger reports whether n has no fractional part.
func (n Number) IsInteger() bool {
	if !n.IsReal() {
		return false
	}
	x := real(n.val)
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return false
	}
	_, frac := math.Modf(x)
	return frac == 0
}

// IsExact reports whether n is an integer that float64 represents exactly.
func (n Number) IsExact() bool {
	return n.IsInteger() && math.Abs(real(n.val)) < maxExactInt
}

// Eqv reports whether a and b have the same representation and value.
func (a Number) Eqv(b Number) bool {
	return a.Type == b.Type && a.val == b.val
}

func (n Number) String() string {
	switch n.Type {
	case NumComplex:
		return formatReal(real(n.val)) + formatSigned(imag(n.val)) + "i"
	default:
		return formatReal(real(n.val))
	}
}

func formatReal(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func formatSigned(x float64) string {
	s := formatReal(x)
	if s[0] != '-' && s[0] != '+' {
		return "+" + s
	}
	return s
}

// ParseNumber parses the text of a numeric literal.  Real literals are
// decimal floats.  Complex literals have the form re+imi, re-imi or imi.
func ParseNumber(text string) (Number, error) {
	body, ok := strings.CutSuffix(text, "i")
	if !ok {
		x, err := parseFloat(text)
		if err != nil {
			return Number{}, err
		}
		return BuildReal(x), nil
	}
	split := -1
	for i := len(body) - 1; i > 0; i-- {
		c := body[i]
		if (c == '+' || c == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			split = i
			break
		}
	}
	if split < 0 {
		im, err := parseFloat(body)
		if err != nil {
			return Number{}, err
		}
		return BuildComplex(0, im), nil
	}
	re, err := parseFloat(body[:split])
	if err != nil {
		return Number{}, err
	}
	im, err := parseFloat(body[split:])
	if err != nil {
		return Number{}, err
	}
	return BuildComplex(re, im), nil
}

func parseFloat(text string) (float64, error) {
	x, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if nerr, ok := err.(*strconv.NumError); ok {
			return 0, fmt.Errorf("invalid number %q: %w", text, nerr.Err)
		}
		return 0, err
	}
	return x, nil
}

// promote converts n to type t.  Demotion is never performed.
func promote(n Number, t NumberType) Number {
	if coerce := coercionTable[n.Type][t]; coerce != nil {
		return coerce(n)
	}
	return n
}

var coercionTable = [numTypes][numTypes]func(Number) Number{
	NumReal: {
		NumComplex: func(n Number) Number { return Number{Type: NumComplex, val: n.val} },
	},
}

// coerce promotes the lower of a and b to the type of the higher.
func coerce(a, b Number) (Number, Number) {
	switch {
	case a.Type < b.Type:
		a = promote(a, b.Type)
	case b.Type < a.Type:
		b = promote(b, a.Type)
	}
	return a, b
}

type arithFunc func(a, b Number) Number

var arithTable = [numTypes][arithOps]arithFunc{
	NumReal: {
		OpAdd: func(a, b Number) Number { return BuildReal(real(a.val) + real(b.val)) },
		OpSub: func(a, b Number) Number { return BuildReal(real(a.val) - real(b.val)) },
		OpMul: func(a, b Number) Number { return BuildReal(real(a.val) * real(b.val)) },
		OpDiv: func(a, b Number) Number { return BuildReal(real(a.val) / real(b.val)) },
	},
	NumComplex: {
		OpAdd: func(a, b Number) Number { return Number{NumComplex, a.val + b.val} },
		OpSub: func(a, b Number) Number { return Number{NumComplex, a.val - b.val} },
		OpMul: func(a, b Number) Number { return Number{NumComplex, a.val * b.val} },
		OpDiv: func(a, b Number) Number { return Number{NumComplex, a.val / b.val} },
	},
}

// ApplyArith computes a op b after coercing both operands to a common type.
func ApplyArith(op ArithOp, a, b Number) (Number, error) {
	if op >= arithOps {
		return Number{}, fmt.Errorf("invalid arithmetic operator: %d", op)
	}
	a, b = coerce(a, b)
	return arithTable[a.Type][op](a, b), nil
}

type logicFunc func(a, b Number) (bool, error)

func orderReal(cmp func(x, y float64) bool) logicFunc {
	return func(a, b Number) (bool, error) {
		return cmp(real(a.val), real(b.val)), nil
	}
}

// orderComplex compares the real parts of complex numbers which have no
// imaginary part.  Any other complex operand is a domain error.
func orderComplex(cmp func(x, y float64) bool) logicFunc {
	return func(a, b Number) (bool, error) {
		if !a.IsReal() || !b.IsReal() {
			return false, Errorf(CondDomain, "cannot order complex numbers: %v, %v", a, b)
		}
		return cmp(real(a.val), real(b.val)), nil
	}
}

func numGT(x, y float64) bool { return x > y }
func numLT(x, y float64) bool { return x < y }
func numGE(x, y float64) bool { return x >= y }
func numLE(x, y float64) bool { return x <= y }

var logicTable = [numTypes][logicOps]logicFunc{
	NumReal: {
		OpEqual:        func(a, b Number) (bool, error) { return real(a.val) == real(b.val), nil },
		OpGreater:      orderReal(numGT),
		OpLess:         orderReal(numLT),
		OpGreaterEqual: orderReal(numGE),
		OpLessEqual:    orderReal(numLE),
	},
	NumComplex: {
		OpEqual:        func(a, b Number) (bool, error) { return a.val == b.val, nil },
		OpGreater:      orderComplex(numGT),
		OpLess:         orderComplex(numLT),
		OpGreaterEqual: orderComplex(numGE),
		OpLessEqual:    orderComplex(numLE),
	},
}

// ApplyLogic computes the comparison a op b after coercion.  Ordering a
// number with a nonzero imaginary part is a domain error.
func ApplyLogic(op LogicOp, a, b Number) (bool, error) {
	if op >= logicOps {
		return false, fmt.Errorf("invalid comparison operator: %d", op)
	}
	a, b = coerce(a, b)
	return logicTable[a.Type][op](a, b)
}
