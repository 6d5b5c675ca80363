// Copyright © 2026 The LISPE authors

package lisp

import (
	"bytes"
	"io"
)

// langBuiltins is the table every interpreter starts with.
var langBuiltins = []*Builtin{
	{Name: "+", Formals: "(. numbers)", Min: 0, Max: Variadic, Fn: builtinArith(OpAdd, 0),
		Doc: "Returns the sum of the arguments, or 0 when there are none."},
	{Name: "-", Formals: "(x . numbers)", Min: 1, Max: Variadic, Fn: builtinArith(OpSub, 0),
		Doc: "Subtracts the remaining arguments from x.  With a single argument returns its negation."},
	{Name: "*", Formals: "(. numbers)", Min: 0, Max: Variadic, Fn: builtinArith(OpMul, 1),
		Doc: "Returns the product of the arguments, or 1 when there are none."},
	{Name: "/", Formals: "(x . numbers)", Min: 1, Max: Variadic, Fn: builtinArith(OpDiv, 1),
		Doc: "Divides x by the remaining arguments.  With a single argument returns its reciprocal.  Division by zero follows IEEE 754."},
	{Name: "=", Formals: "(x . numbers)", Min: 1, Max: Variadic, Fn: builtinCompare(OpEqual),
		Doc: "Returns #t if all arguments are numerically equal."},
	{Name: "<", Formals: "(x . numbers)", Min: 1, Max: Variadic, Fn: builtinCompare(OpLess),
		Doc: "Returns #t if the arguments are strictly increasing.  Complex arguments must have a zero imaginary part."},
	{Name: ">", Formals: "(x . numbers)", Min: 1, Max: Variadic, Fn: builtinCompare(OpGreater),
		Doc: "Returns #t if the arguments are strictly decreasing."},
	{Name: "<=", Formals: "(x . numbers)", Min: 1, Max: Variadic, Fn: builtinCompare(OpLessEqual),
		Doc: "Returns #t if the arguments are nondecreasing."},
	{Name: ">=", Formals: "(x . numbers)", Min: 1, Max: Variadic, Fn: builtinCompare(OpGreaterEqual),
		Doc: "Returns #t if the arguments are nonincreasing."},
	{Name: "number?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinNumberP,
		Doc: "Returns #t if x is a number."},
	{Name: "complex?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinNumberP,
		Doc: "Returns #t if x is a number.  Every number is complex."},
	{Name: "real?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinNumberPred(Number.IsReal),
		Doc: "Returns #t if x is a number with no imaginary part."},
	{Name: "integer?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinNumberPred(Number.IsInteger),
		Doc: "Returns #t if x is a real number with no fractional part."},
	{Name: "exact?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinExactP,
		Doc: "Returns #t if x is an integer small enough to be represented exactly.  It is an error if x is not a number."},
	{Name: "make-rectangular", Formals: "(re im)", Min: 2, Max: 2, Fn: builtinMakeRectangular,
		Doc: "Returns the complex number re+im*i.  Both arguments must be real."},
	{Name: "real-part", Formals: "(z)", Min: 1, Max: 1, Fn: builtinRealPart,
		Doc: "Returns the real part of z."},
	{Name: "imag-part", Formals: "(z)", Min: 1, Max: 1, Fn: builtinImagPart,
		Doc: "Returns the imaginary part of z."},
	{Name: "cons", Formals: "(a b)", Min: 2, Max: 2, Fn: builtinCons,
		Doc: "Returns a new pair with car a and cdr b."},
	{Name: "car", Formals: "(pair)", Min: 1, Max: 1, Fn: builtinCar,
		Doc: "Returns the first element of pair."},
	{Name: "cdr", Formals: "(pair)", Min: 1, Max: 1, Fn: builtinCdr,
		Doc: "Returns the rest of pair."},
	{Name: "set-car!", Formals: "(pair x)", Min: 2, Max: 2, Fn: builtinSetCar,
		Doc: "Replaces the car of pair with x and returns pair."},
	{Name: "set-cdr!", Formals: "(pair x)", Min: 2, Max: 2, Fn: builtinSetCdr,
		Doc: "Replaces the cdr of pair with x and returns pair."},
	{Name: "list", Formals: "(. xs)", Min: 0, Max: Variadic, Fn: builtinList,
		Doc: "Returns a list of the arguments."},
	{Name: "length", Formals: "(list)", Min: 1, Max: 1, Fn: builtinLength,
		Doc: "Returns the number of elements of a proper list."},
	{Name: "assoc", Formals: "(key alist)", Min: 2, Max: 2, Fn: builtinAssoc,
		Doc: "Returns the first pair in alist whose car is equal? to key, or #f."},
	{Name: "eq?", Formals: "(a b)", Min: 2, Max: 2, Fn: builtinEqP,
		Doc: "Returns #t if a and b are the same object."},
	{Name: "eqv?", Formals: "(a b)", Min: 2, Max: 2, Fn: builtinEqvP,
		Doc: "Like eq? but also true for numbers with the same representation and value."},
	{Name: "equal?", Formals: "(a b)", Min: 2, Max: 2, Fn: builtinEqualP,
		Doc: "Returns #t if a and b are structurally equal."},
	{Name: "null?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinTagP(TagNil),
		Doc: "Returns #t if x is the empty list."},
	{Name: "pair?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinTagP(TagPair),
		Doc: "Returns #t if x is a pair."},
	{Name: "symbol?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinTagP(TagSymbol),
		Doc: "Returns #t if x is a symbol."},
	{Name: "atom?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinAtomP,
		Doc: "Returns #t if x is not a pair."},
	{Name: "boolean?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinBooleanP,
		Doc: "Returns #t if x is #t or #f."},
	{Name: "procedure?", Formals: "(x)", Min: 1, Max: 1, Fn: builtinProcedureP,
		Doc: "Returns #t if x can be applied."},
	{Name: "not", Formals: "(x)", Min: 1, Max: 1, Fn: builtinNot,
		Doc: "Returns #t if x is false."},
	{Name: "eval", Formals: "(expr)", Min: 1, Max: 1, Tail: true, Fn: builtinEval,
		Doc: "Evaluates expr in the current environment."},
	{Name: "apply", Formals: "(proc . args)", Min: 2, Max: Variadic, Fn: builtinApply,
		Doc: "Applies proc to the arguments.  The last argument is a list spliced onto the others."},
	{Name: "display", Formals: "(x)", Min: 1, Max: 1, Fn: builtinDisplay,
		Doc: "Writes the printed representation of x to standard output."},
	{Name: "newline", Formals: "()", Min: 0, Max: 0, Fn: builtinNewline,
		Doc: "Writes a newline to standard output."},
	{Name: "error", Formals: "(. irritants)", Min: 0, Max: Variadic, Fn: builtinError,
		Doc: "Signals a user-error whose message is the printed irritants."},
	{Name: "gc", Formals: "()", Min: 0, Max: 0, Fn: builtinGC,
		Doc: "Runs the garbage collector."},
	{Name: "body", Formals: "(proc)", Min: 1, Max: 1, Fn: builtinBody,
		Doc: "Returns (params . body) of a lambda or special closure, or () for a builtin."},
	{Name: "quit", Formals: "()", Min: 0, Max: 0, Fn: builtinQuit,
		Doc: "Stops the program.  The REPL and the run command exit normally."},
}

func builtinCons(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 2)
	return in.Cons(a[0], a[1])
}

func builtinCar(in *Interpreter, args, env Value) (Value, error) {
	return in.Car(in.car(args))
}

func builtinCdr(in *Interpreter, args, env Value) (Value, error) {
	return in.Cdr(in.car(args))
}

func builtinSetCar(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 2)
	return a[0], in.SetCar(a[0], a[1])
}

func builtinSetCdr(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 2)
	return a[0], in.SetCdr(a[0], a[1])
}

func builtinList(in *Interpreter, args, env Value) (Value, error) {
	return args, nil
}

func builtinLength(in *Interpreter, args, env Value) (Value, error) {
	n, ok := in.listLength(in.car(args))
	if !ok {
		return Nil, typeErrorf("not a proper list: %s", in.String(in.car(args)))
	}
	return in.MakeReal(float64(n))
}

func builtinAssoc(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 2)
	if _, ok := in.listLength(a[1]); !ok {
		return Nil, typeErrorf("not a proper list: %s", in.String(a[1]))
	}
	for list := a[1]; list.IsPair(); list = in.cdr(list) {
		entry := in.car(list)
		if !entry.IsPair() {
			return Nil, typeErrorf("association list entry is not a pair: %s", in.String(entry))
		}
		eq, err := in.Equal(a[0], in.car(entry))
		if err != nil {
			return Nil, err
		}
		if eq {
			return entry, nil
		}
	}
	return False, nil
}

func builtinEqP(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 2)
	return Bool(Eq(a[0], a[1])), nil
}

func builtinEqvP(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 2)
	return Bool(in.Eqv(a[0], a[1])), nil
}

func builtinEqualP(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 2)
	eq, err := in.Equal(a[0], a[1])
	return Bool(eq), err
}

func builtinTagP(tag Tag) BuiltinFunc {
	return func(in *Interpreter, args, env Value) (Value, error) {
		return Bool(in.car(args).Tag() == tag), nil
	}
}

func builtinAtomP(in *Interpreter, args, env Value) (Value, error) {
	return Bool(!in.car(args).IsPair()), nil
}

func builtinBooleanP(in *Interpreter, args, env Value) (Value, error) {
	t := in.car(args).Tag()
	return Bool(t == TagTrue || t == TagFalse), nil
}

func builtinProcedureP(in *Interpreter, args, env Value) (Value, error) {
	return Bool(in.car(args).IsProcedure()), nil
}

func builtinNot(in *Interpreter, args, env Value) (Value, error) {
	return Bool(!in.car(args).IsTrue()), nil
}

// builtinEval returns its argument for the evaluator to evaluate in the
// caller's environment.
func builtinEval(in *Interpreter, args, env Value) (Value, error) {
	return in.car(args), nil
}

func builtinApply(in *Interpreter, args, env Value) (Value, error) {
	proc := in.car(args)
	vals := in.listSlice(in.cdr(args))
	spread := vals[len(vals)-1]
	if _, ok := in.listLength(spread); !ok {
		return Nil, typeErrorf("last argument to apply is not a proper list: %s", in.String(spread))
	}
	g := in.Protect(spread)
	defer g.Release()
	list := spread
	for i := len(vals) - 2; i >= 0; i-- {
		var err error
		list, err = in.Cons(vals[i], list)
		if err != nil {
			return Nil, err
		}
		g.Set(0, list)
	}
	return in.Apply(proc, list, env)
}

func builtinDisplay(in *Interpreter, args, env Value) (Value, error) {
	return Nil, in.Fprint(in.Stdout, in.car(args))
}

func builtinNewline(in *Interpreter, args, env Value) (Value, error) {
	_, err := io.WriteString(in.Stdout, "\n")
	return Nil, err
}

func builtinError(in *Interpreter, args, env Value) (Value, error) {
	var buf bytes.Buffer
	for i, v := range in.listSlice(args) {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(in.String(v))
	}
	return Nil, &Error{Condition: CondUser, Message: buf.String()}
}

func builtinGC(in *Interpreter, args, env Value) (Value, error) {
	in.collect("gc builtin")
	return Nil, nil
}

func builtinBody(in *Interpreter, args, env Value) (Value, error) {
	proc := in.car(args)
	switch proc.tag {
	case TagClosure, TagSpecialClosure:
		return in.car(proc), nil
	case TagBuiltin, TagSpecial:
		return Nil, nil
	}
	return Nil, typeErrorf("not a procedure: %s", in.String(proc))
}

func builtinQuit(in *Interpreter, args, env Value) (Value, error) {
	return Nil, ErrQuit
}
