// Copyright © 2026 The LISPE authors

package lisp

// numberArgs unboxes every element of args, failing on the first
// non-number.
func (in *Interpreter) numberArgs(args Value) ([]Number, error) {
	var nums []Number
	for ; args.IsPair(); args = in.cdr(args) {
		n, err := in.NumberOf(in.car(args))
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, nil
}

// builtinArith folds op over the arguments.  A single argument is combined
// with identity on the left, which makes (- x) a negation and (/ x) a
// reciprocal.
func builtinArith(op ArithOp, identity float64) BuiltinFunc {
	return func(in *Interpreter, args, env Value) (Value, error) {
		nums, err := in.numberArgs(args)
		if err != nil {
			return Nil, err
		}
		acc := BuildReal(identity)
		rest := nums
		if len(nums) > 1 || (len(nums) == 1 && op != OpSub && op != OpDiv) {
			acc, rest = nums[0], nums[1:]
		}
		for _, n := range rest {
			acc, err = ApplyArith(op, acc, n)
			if err != nil {
				return Nil, err
			}
		}
		return in.MakeNumber(acc)
	}
}

// builtinCompare checks op between every adjacent pair of arguments.  All
// arguments are type checked even when the result is known early.
func builtinCompare(op LogicOp) BuiltinFunc {
	return func(in *Interpreter, args, env Value) (Value, error) {
		nums, err := in.numberArgs(args)
		if err != nil {
			return Nil, err
		}
		result := true
		for i := 1; i < len(nums); i++ {
			ok, err := ApplyLogic(op, nums[i-1], nums[i])
			if err != nil {
				return Nil, err
			}
			result = result && ok
		}
		return Bool(result), nil
	}
}

func builtinNumberP(in *Interpreter, args, env Value) (Value, error) {
	return Bool(in.car(args).IsNumber()), nil
}

func builtinNumberPred(pred func(Number) bool) BuiltinFunc {
	return func(in *Interpreter, args, env Value) (Value, error) {
		x := in.car(args)
		if !x.IsNumber() {
			return False, nil
		}
		return Bool(pred(in.numbers.Get(x.Index()))), nil
	}
}

func builtinExactP(in *Interpreter, args, env Value) (Value, error) {
	n, err := in.NumberOf(in.car(args))
	if err != nil {
		return Nil, err
	}
	return Bool(n.IsExact()), nil
}

func (in *Interpreter) realArg(v Value) (float64, error) {
	n, err := in.NumberOf(v)
	if err != nil {
		return 0, err
	}
	if !n.IsReal() {
		return 0, Errorf(CondDomain, "not a real number: %v", n)
	}
	return n.Real(), nil
}

func builtinMakeRectangular(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 2)
	re, err := in.realArg(a[0])
	if err != nil {
		return Nil, err
	}
	im, err := in.realArg(a[1])
	if err != nil {
		return Nil, err
	}
	return in.MakeComplex(re, im)
}

func builtinRealPart(in *Interpreter, args, env Value) (Value, error) {
	n, err := in.NumberOf(in.car(args))
	if err != nil {
		return Nil, err
	}
	return in.MakeReal(n.Real())
}

func builtinImagPart(in *Interpreter, args, env Value) (Value, error) {
	n, err := in.NumberOf(in.car(args))
	if err != nil {
		return Nil, err
	}
	return in.MakeReal(n.Imag())
}
