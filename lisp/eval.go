// Copyright © 2026 The LISPE authors

package lisp

// Eval evaluates expr in env.
//
// Applications of closures and tail-returning builtins hand back a pending
// expression instead of a value.  Eval loops on that expression rather than
// recursing, so a chain of tail calls runs in constant stack space and
// reuses a single call frame.
func (in *Interpreter) Eval(expr, env Value) (Value, error) {
	g := in.Protect(expr, env)
	defer g.Release()
	frame := -1
	defer func() {
		if frame >= 0 {
			in.Stack.Pop()
		}
	}()
	for {
		in.reg.expr, in.reg.env = expr, env
		switch expr.tag {
		case TagSymbol:
			binding, ok := in.Lookup(expr, env)
			if !ok {
				return Nil, in.withStack(Errorf(CondUnbound, "unbound variable: %s", in.symbols.name(expr.Index())))
			}
			return in.cdr(binding), nil
		case TagPair:
			if frame < 0 {
				if err := in.Stack.Push("", TagNil); err != nil {
					return Nil, in.withStack(err)
				}
				frame = in.Stack.Height() - 1
			} else {
				in.Stack.TailCalls++
			}
			val, tail, next, err := in.evalApplication(frame, expr, env)
			if err != nil {
				return Nil, err
			}
			if !tail {
				in.reg.val = val
				return val, nil
			}
			expr, env = val, next
			g.Set(0, expr)
			g.Set(1, env)
		default:
			return expr, nil
		}
	}
}

// Apply applies proc to args and evaluates any pending tail expression.  The
// arguments of a special form are not evaluated.
func (in *Interpreter) Apply(proc, args, env Value) (Value, error) {
	if !proc.IsProcedure() {
		return Nil, in.withStack(typeErrorf("not a procedure: %s", in.String(proc)))
	}
	g := in.Protect(proc, args, env)
	defer g.Release()
	if err := in.Stack.Push(in.procName(Nil, proc), proc.tag); err != nil {
		return Nil, in.withStack(err)
	}
	in.Stack.Top().Builtin, _ = in.Builtin(proc)
	val, tail, next, err := in.apply(proc, args, env)
	in.Stack.Pop()
	if err != nil || !tail {
		return val, err
	}
	return in.Eval(val, next)
}

// evalApplication evaluates the operator of expr, then its operands unless
// the operator is a special form, and applies the result.  The call is
// recorded in the stack frame at index frame.
func (in *Interpreter) evalApplication(frame int, expr, env Value) (Value, bool, Value, error) {
	opExpr := in.car(expr)
	op, err := in.Eval(opExpr, env)
	if err != nil {
		return Nil, false, Nil, err
	}
	b, _ := in.Builtin(op)
	in.Stack.Frames[frame] = CallFrame{Name: in.procName(opExpr, op), Kind: op.tag, Builtin: b}
	g := in.Protect(op)
	defer g.Release()
	args := in.cdr(expr)
	switch op.tag {
	case TagBuiltin, TagClosure:
		args, err = in.evalArgs(args, env)
		if err != nil {
			return Nil, false, Nil, err
		}
		g.Push(args)
	case TagSpecial, TagSpecialClosure:
	default:
		return Nil, false, Nil, in.withStack(typeErrorf("not a procedure: %s", in.String(op)))
	}
	return in.apply(op, args, env)
}

// evalArgs evaluates each element of unev from left to right and returns
// the list of results.
func (in *Interpreter) evalArgs(unev, env Value) (Value, error) {
	g := in.Protect(unev, Nil)
	defer g.Release()
	head, last := Nil, Nil
	for ; unev.IsPair(); unev = in.cdr(unev) {
		in.reg.unev = unev
		v, err := in.Eval(in.car(unev), env)
		if err != nil {
			return Nil, err
		}
		c, err := in.Cons(v, Nil)
		if err != nil {
			return Nil, err
		}
		if head.IsNil() {
			head = c
			g.Set(1, head)
		} else {
			in.setCdr(last, c)
		}
		last = c
	}
	if !unev.IsNil() {
		return Nil, in.withStack(typeErrorf("improper argument list"))
	}
	in.reg.args = head
	return head, nil
}

// apply runs one procedure application in the frame on top of the stack.
// When the returned flag is set the value is an expression the caller must
// evaluate in the returned environment.
func (in *Interpreter) apply(proc, args, env Value) (Value, bool, Value, error) {
	in.reg.proc, in.reg.args = proc, args
	g := in.Protect(proc, args, env)
	defer g.Release()
	if in.Profiler != nil && in.Profiler.IsEnabled() {
		frame := *in.Stack.Top()
		defer in.Profiler.Start(&frame)()
	}

	var (
		val  Value
		tail bool
		next = env
		err  error
	)
	switch proc.tag {
	case TagBuiltin, TagSpecial:
		val, tail, err = in.applyBuiltin(in.builtins[proc.Index()], args, env)
	case TagClosure:
		val, tail, next, err = in.applyClosure(proc, args)
	case TagSpecialClosure:
		val, tail, err = in.applySpecialClosure(proc, args)
	default:
		err = typeErrorf("not a procedure: %s", in.String(proc))
	}
	if err != nil {
		return Nil, false, Nil, in.withStack(err)
	}
	return val, tail, next, nil
}

func (in *Interpreter) applyBuiltin(b *Builtin, args, env Value) (Value, bool, error) {
	n, ok := in.listLength(args)
	if !ok {
		return Nil, false, typeErrorf("improper argument list")
	}
	if err := b.checkArity(n); err != nil {
		return Nil, false, err
	}
	val, err := b.Fn(in, args, env)
	if err != nil {
		return Nil, false, err
	}
	return val, b.Tail, nil
}

// bindClosure creates the activation frame of a closure and returns it with
// the closure body.
func (in *Interpreter) bindClosure(proc, args Value) (Value, Value, error) {
	c := in.cell(proc)
	params, body := in.car(c.Car), in.cdr(c.Car)
	env, err := in.MakeEnvironment(c.Cdr)
	if err != nil {
		return Nil, Nil, err
	}
	g := in.Protect(env)
	defer g.Release()
	if err := in.Extend(env, params, args); err != nil {
		return Nil, Nil, err
	}
	return env, body, nil
}

// applyClosure evaluates all but the last body form and returns the last
// one as a pending tail expression.
func (in *Interpreter) applyClosure(proc, args Value) (Value, bool, Value, error) {
	env, body, err := in.bindClosure(proc, args)
	if err != nil {
		return Nil, false, Nil, err
	}
	if body.IsNil() {
		return Nil, false, Nil, nil
	}
	g := in.Protect(env)
	defer g.Release()
	for ; in.cdr(body).IsPair(); body = in.cdr(body) {
		if _, err := in.Eval(in.car(body), env); err != nil {
			return Nil, false, Nil, err
		}
	}
	return in.car(body), true, env, nil
}

// applySpecialClosure evaluates the whole body in a fresh frame.  The result
// is an expression for the caller to evaluate in its own environment.
func (in *Interpreter) applySpecialClosure(proc, args Value) (Value, bool, error) {
	env, body, err := in.bindClosure(proc, args)
	if err != nil {
		return Nil, false, err
	}
	if body.IsNil() {
		return Nil, false, nil
	}
	g := in.Protect(env)
	defer g.Release()
	result := Nil
	for ; body.IsPair(); body = in.cdr(body) {
		result, err = in.Eval(in.car(body), env)
		if err != nil {
			return Nil, false, err
		}
	}
	return result, true, nil
}

func (in *Interpreter) procName(opExpr, proc Value) string {
	if opExpr.IsSymbol() {
		return in.symbols.name(opExpr.Index())
	}
	switch proc.tag {
	case TagBuiltin, TagSpecial:
		return in.builtins[proc.Index()].Name
	case TagClosure:
		return "lambda"
	case TagSpecialClosure:
		return "special"
	}
	return ""
}

// withStack attaches a copy of the call stack to errors that lack one.
func (in *Interpreter) withStack(err error) error {
	if lerr, ok := err.(*Error); ok && lerr.Stack == nil {
		lerr.Stack = in.Stack.Copy()
	}
	return err
}
