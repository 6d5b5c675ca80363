// Copyright © 2026 The LISPE authors

package lisp

import (
	"errors"
	"fmt"
)

// Variadic is the Max of a builtin accepting any number of arguments.
const Variadic = -1

// BuiltinFunc implements a builtin.  Args is a proper list of evaluated
// arguments, or of raw operands for a special form.  Env is the caller's
// environment.
type BuiltinFunc func(in *Interpreter, args, env Value) (Value, error)

// Builtin is an entry of the interpreter's builtin table.
type Builtin struct {
	Name string
	// Formals documents the argument list, e.g. "(x . rest)".
	Formals string
	Min     int
	Max     int
	// Special builtins receive their operands unevaluated.
	Special bool
	// Tail builtins return an expression which the evaluator evaluates in
	// the caller's environment in place of the call.
	Tail bool
	Fn   BuiltinFunc
	Doc  string
}

func (b *Builtin) validate() error {
	switch {
	case b == nil:
		return errors.New("nil builtin")
	case b.Name == "":
		return errors.New("builtin has no name")
	case b.Fn == nil:
		return fmt.Errorf("builtin %s has no function", b.Name)
	case b.Min < 0 || (b.Max != Variadic && b.Max < b.Min):
		return fmt.Errorf("builtin %s has invalid arity %d..%d", b.Name, b.Min, b.Max)
	}
	return nil
}

func (b *Builtin) value(i int) Value {
	if b.Special {
		return makeValue(TagSpecial, i)
	}
	return makeValue(TagBuiltin, i)
}

func (b *Builtin) checkArity(n int) error {
	if n < b.Min {
		return arityErrorf("too few arguments: %d (minimum %d)", n, b.Min)
	}
	if b.Max != Variadic && n > b.Max {
		return arityErrorf("too many arguments: %d (maximum %d)", n, b.Max)
	}
	return nil
}

// Arity describes the accepted argument counts, e.g. "2", "1+" or "0-1".
func (b *Builtin) Arity() string {
	switch {
	case b.Max == Variadic:
		return fmt.Sprintf("%d+", b.Min)
	case b.Max == b.Min:
		return fmt.Sprint(b.Min)
	default:
		return fmt.Sprintf("%d-%d", b.Min, b.Max)
	}
}

// Builtin returns the table entry referenced by v.
func (in *Interpreter) Builtin(v Value) (*Builtin, bool) {
	if v.tag != TagBuiltin && v.tag != TagSpecial {
		return nil, false
	}
	return in.builtins[v.Index()], true
}

// args returns the first n elements of a list the evaluator has already
// checked against a builtin's arity.
func (in *Interpreter) args(list Value, n int) []Value {
	vals := make([]Value, 0, n)
	for ; n > 0 && list.IsPair(); n-- {
		vals = append(vals, in.car(list))
		list = in.cdr(list)
	}
	return vals
}
