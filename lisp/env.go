// Copyright © 2026 The LISPE authors

package lisp

import "sort"

// An environment frame is a pair whose car is the parent frame and whose cdr
// is a list of (symbol . value) bindings.  The outermost frame has a nil
// parent.

// MakeEnvironment returns an empty frame below parent.
func (in *Interpreter) MakeEnvironment(parent Value) (Value, error) {
	return in.Cons(parent, Nil)
}

// LookupLocal returns the binding of sym in env, ignoring ancestors.  A
// value that is not a frame has no bindings.
func (in *Interpreter) LookupLocal(sym, env Value) (Value, bool) {
	if !env.IsPair() {
		return Nil, false
	}
	for b := in.cdr(env); b.IsPair(); b = in.cdr(b) {
		binding := in.car(b)
		if binding.IsPair() && in.car(binding) == sym {
			return binding, true
		}
	}
	return Nil, false
}

// Lookup returns the binding of sym in env or its nearest ancestor.
func (in *Interpreter) Lookup(sym, env Value) (Value, bool) {
	for ; env.IsPair(); env = in.car(env) {
		if binding, ok := in.LookupLocal(sym, env); ok {
			return binding, true
		}
	}
	return Nil, false
}

// Define binds sym to val in env.  An existing binding in env is replaced;
// bindings in ancestors are shadowed.
func (in *Interpreter) Define(sym, val, env Value) error {
	if !sym.IsSymbol() {
		return typeErrorf("cannot bind non-symbol: %s", in.String(sym))
	}
	if binding, ok := in.LookupLocal(sym, env); ok {
		in.setCdr(binding, val)
		return nil
	}
	g := in.Protect(env)
	defer g.Release()
	binding, err := in.Cons(sym, val)
	if err != nil {
		return err
	}
	link, err := in.Cons(binding, in.cdr(env))
	if err != nil {
		return err
	}
	in.setCdr(env, link)
	return nil
}

// Set rebinds the nearest existing binding of sym.
func (in *Interpreter) Set(sym, val, env Value) error {
	if !sym.IsSymbol() {
		return typeErrorf("cannot set non-symbol: %s", in.String(sym))
	}
	binding, ok := in.Lookup(sym, env)
	if !ok {
		return Errorf(CondUnbound, "unbound variable: %s", in.String(sym))
	}
	in.setCdr(binding, val)
	return nil
}

// Extend binds params to args in env.  Params is a proper list of symbols,
// a dotted list whose final symbol receives the remaining arguments, or a
// single symbol receiving all of them.
func (in *Interpreter) Extend(env, params, args Value) error {
	g := in.Protect(env, params, args)
	defer g.Release()
	for params.IsPair() {
		if !args.IsPair() {
			return arityErrorf("too few arguments")
		}
		if err := in.Define(in.car(params), in.car(args), env); err != nil {
			return err
		}
		params, args = in.cdr(params), in.cdr(args)
	}
	switch params.Tag() {
	case TagNil:
		if !args.IsNil() {
			return arityErrorf("too many arguments")
		}
		return nil
	case TagSymbol:
		return in.Define(params, args, env)
	default:
		return typeErrorf("invalid parameter list element: %s", in.String(params))
	}
}

// GlobalNames returns the sorted names bound in the global environment.
func (in *Interpreter) GlobalNames() []string {
	var names []string
	for b := in.cdr(in.global); b.IsPair(); b = in.cdr(b) {
		names = append(names, in.symbols.name(in.car(in.car(b)).Index()))
	}
	sort.Strings(names)
	return names
}
