// Copyright © 2026 The LISPE authors

// Package libmath provides transcendental and rounding functions over the
// real and complex numbers.
package libmath

import (
	"math"
	"math/cmplx"

	"github.com/luthersystems/lispe/lisp"
)

// Builtins returns the math builtins.  Install them with lisp.WithBuiltins.
func Builtins() []*lisp.Builtin {
	return append([]*lisp.Builtin(nil), builtins...)
}

var builtins = []*lisp.Builtin{
	{Name: "nan?", Formals: "(number)", Min: 1, Max: 1, Fn: builtinIsNaN,
		Doc: "Returns #t if either part of number is NaN."},
	{Name: "abs", Formals: "(number)", Min: 1, Max: 1, Fn: builtinAbs,
		Doc: "Returns the absolute value of a real number, or the magnitude of a complex number."},
	{Name: "magnitude", Formals: "(number)", Min: 1, Max: 1, Fn: builtinAbs,
		Doc: "Returns the distance of number from zero in the complex plane."},
	{Name: "angle", Formals: "(number)", Min: 1, Max: 1, Fn: builtinAngle,
		Doc: "Returns the phase of number in radians, in the range [-pi, pi]."},
	{Name: "floor", Formals: "(number)", Min: 1, Max: 1, Fn: realFunc(math.Floor).builtin,
		Doc: "Returns the greatest integer not greater than number."},
	{Name: "ceiling", Formals: "(number)", Min: 1, Max: 1, Fn: realFunc(math.Ceil).builtin,
		Doc: "Returns the least integer not less than number."},
	{Name: "round", Formals: "(number)", Min: 1, Max: 1, Fn: realFunc(math.RoundToEven).builtin,
		Doc: "Returns the closest integer to number, rounding to even when number is halfway between two integers."},
	{Name: "sqrt", Formals: "(number)", Min: 1, Max: 1, Fn: mathFunc{math.Sqrt, cmplx.Sqrt, negativeDomain}.builtin,
		Doc: "Returns the principal square root of number.  The square root of a negative real is complex."},
	{Name: "exp", Formals: "(number)", Min: 1, Max: 1, Fn: mathFunc{math.Exp, cmplx.Exp, nil}.builtin,
		Doc: "Returns e raised to the power number."},
	{Name: "log", Formals: "(number . base)", Min: 1, Max: 2, Fn: builtinLog,
		Doc: "Returns the natural logarithm of number, or its logarithm in base when base is given.  The logarithm of a negative real is complex."},
	{Name: "expt", Formals: "(base power)", Min: 2, Max: 2, Fn: builtinExpt,
		Doc: "Returns base raised to power.  A negative real base with a fractional power gives a complex result."},
	{Name: "sin", Formals: "(radians)", Min: 1, Max: 1, Fn: mathFunc{math.Sin, cmplx.Sin, nil}.builtin,
		Doc: "Returns the sine of radians."},
	{Name: "cos", Formals: "(radians)", Min: 1, Max: 1, Fn: mathFunc{math.Cos, cmplx.Cos, nil}.builtin,
		Doc: "Returns the cosine of radians."},
	{Name: "tan", Formals: "(radians)", Min: 1, Max: 1, Fn: mathFunc{math.Tan, cmplx.Tan, nil}.builtin,
		Doc: "Returns the tangent of radians."},
	{Name: "asin", Formals: "(x)", Min: 1, Max: 1, Fn: mathFunc{math.Asin, cmplx.Asin, outsideUnit}.builtin,
		Doc: "Returns the inverse sine of x.  Reals outside [-1, 1] give a complex result."},
	{Name: "acos", Formals: "(x)", Min: 1, Max: 1, Fn: mathFunc{math.Acos, cmplx.Acos, outsideUnit}.builtin,
		Doc: "Returns the inverse cosine of x.  Reals outside [-1, 1] give a complex result."},
	{Name: "atan", Formals: "(y . x)", Min: 1, Max: 2, Fn: builtinAtan,
		Doc: "Returns the inverse tangent of y.  Given two real arguments returns the angle of the point (x, y), computed in the correct quadrant."},
	{Name: "sinh", Formals: "(x)", Min: 1, Max: 1, Fn: mathFunc{math.Sinh, cmplx.Sinh, nil}.builtin,
		Doc: "Returns the hyperbolic sine of x."},
	{Name: "cosh", Formals: "(x)", Min: 1, Max: 1, Fn: mathFunc{math.Cosh, cmplx.Cosh, nil}.builtin,
		Doc: "Returns the hyperbolic cosine of x."},
	{Name: "tanh", Formals: "(x)", Min: 1, Max: 1, Fn: mathFunc{math.Tanh, cmplx.Tanh, nil}.builtin,
		Doc: "Returns the hyperbolic tangent of x."},
}

func numberArgs(in *lisp.Interpreter, args lisp.Value) ([]lisp.Number, error) {
	var nums []lisp.Number
	for !args.IsNil() {
		x, err := in.Car(args)
		if err != nil {
			return nil, err
		}
		n, err := in.NumberOf(x)
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
		args, err = in.Cdr(args)
		if err != nil {
			return nil, err
		}
	}
	return nums, nil
}

func makeComplex(in *lisp.Interpreter, z complex128) (lisp.Value, error) {
	return in.MakeComplex(real(z), imag(z))
}

func builtinIsNaN(in *lisp.Interpreter, args, env lisp.Value) (lisp.Value, error) {
	nums, err := numberArgs(in, args)
	if err != nil {
		return lisp.Nil, err
	}
	return lisp.Bool(cmplx.IsNaN(nums[0].Complex())), nil
}

func builtinAbs(in *lisp.Interpreter, args, env lisp.Value) (lisp.Value, error) {
	nums, err := numberArgs(in, args)
	if err != nil {
		return lisp.Nil, err
	}
	return in.MakeReal(cmplx.Abs(nums[0].Complex()))
}

func builtinAngle(in *lisp.Interpreter, args, env lisp.Value) (lisp.Value, error) {
	nums, err := numberArgs(in, args)
	if err != nil {
		return lisp.Nil, err
	}
	return in.MakeReal(cmplx.Phase(nums[0].Complex()))
}

func builtinLog(in *lisp.Interpreter, args, env lisp.Value) (lisp.Value, error) {
	nums, err := numberArgs(in, args)
	if err != nil {
		return lisp.Nil, err
	}
	ln := mathFunc{math.Log, cmplx.Log, negativeDomain}
	x := nums[0]
	if len(nums) == 1 {
		return ln.apply(in, x)
	}
	b := nums[1]
	if x.Type == lisp.NumReal && b.Type == lisp.NumReal && x.Real() >= 0 && b.Real() >= 0 {
		return in.MakeReal(math.Log(x.Real()) / math.Log(b.Real()))
	}
	return makeComplex(in, cmplx.Log(x.Complex())/cmplx.Log(b.Complex()))
}

func builtinExpt(in *lisp.Interpreter, args, env lisp.Value) (lisp.Value, error) {
	nums, err := numberArgs(in, args)
	if err != nil {
		return lisp.Nil, err
	}
	b, p := nums[0], nums[1]
	if b.Type == lisp.NumReal && p.Type == lisp.NumReal && (b.Real() >= 0 || p.IsInteger()) {
		return in.MakeReal(math.Pow(b.Real(), p.Real()))
	}
	return makeComplex(in, cmplx.Pow(b.Complex(), p.Complex()))
}

func builtinAtan(in *lisp.Interpreter, args, env lisp.Value) (lisp.Value, error) {
	nums, err := numberArgs(in, args)
	if err != nil {
		return lisp.Nil, err
	}
	y := nums[0]
	if len(nums) == 1 {
		return mathFunc{math.Atan, cmplx.Atan, nil}.apply(in, y)
	}
	x := nums[1]
	if y.Type != lisp.NumReal || x.Type != lisp.NumReal {
		return lisp.Nil, lisp.Errorf(lisp.CondDomain, "atan of two arguments requires real numbers: %v, %v", y, x)
	}
	return in.MakeReal(math.Atan2(y.Real(), x.Real()))
}

// realFunc is a function of the real number line.  Complex arguments are a
// type error.
type realFunc func(float64) float64

func (fn realFunc) builtin(in *lisp.Interpreter, args, env lisp.Value) (lisp.Value, error) {
	nums, err := numberArgs(in, args)
	if err != nil {
		return lisp.Nil, err
	}
	if nums[0].Type != lisp.NumReal {
		return lisp.Nil, lisp.Errorf(lisp.CondType, "argument is not a real number: %v", nums[0])
	}
	return in.MakeReal(fn(nums[0].Real()))
}

// mathFunc evaluates real arguments on the real line unless leaves
// reports that the result leaves it.  Complex arguments give complex
// results.
type mathFunc struct {
	real    func(float64) float64
	complex func(complex128) complex128
	leaves  func(float64) bool
}

func (fn mathFunc) builtin(in *lisp.Interpreter, args, env lisp.Value) (lisp.Value, error) {
	nums, err := numberArgs(in, args)
	if err != nil {
		return lisp.Nil, err
	}
	return fn.apply(in, nums[0])
}

func (fn mathFunc) apply(in *lisp.Interpreter, x lisp.Number) (lisp.Value, error) {
	if x.Type == lisp.NumReal && (fn.leaves == nil || !fn.leaves(x.Real())) {
		return in.MakeReal(fn.real(x.Real()))
	}
	return makeComplex(in, fn.complex(x.Complex()))
}

func negativeDomain(x float64) bool { return x < 0 }

func outsideUnit(x float64) bool { return x < -1 || x > 1 }
