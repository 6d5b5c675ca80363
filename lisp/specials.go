// Copyright © 2026 The LISPE authors

package lisp

// langSpecialOps receive their operands unevaluated.  Those marked Tail
// return the expression that produces their value.
var langSpecialOps = []*Builtin{
	{Name: "quote", Formals: "(expr)", Min: 1, Max: 1, Special: true, Fn: opQuote,
		Doc: "Returns expr without evaluating it."},
	{Name: "if", Formals: "(test then . else)", Min: 2, Max: 3, Special: true, Tail: true, Fn: opIf,
		Doc: "Evaluates test and then either then or else.  Without an else branch a false test yields ()."},
	{Name: "cond", Formals: "(. clauses)", Min: 0, Max: Variadic, Special: true, Tail: true, Fn: opCond,
		Doc: `Evaluates the body of the first clause whose test is true.  A clause
		is (test body...) and the test else always matches.  A clause with no
		body yields the value of its test.`},
	{Name: "and", Formals: "(. exprs)", Min: 0, Max: Variadic, Special: true, Tail: true, Fn: opAnd,
		Doc: "Evaluates exprs left to right, stopping at the first false value.  (and) is #t."},
	{Name: "or", Formals: "(. exprs)", Min: 0, Max: Variadic, Special: true, Tail: true, Fn: opOr,
		Doc: "Evaluates exprs left to right, stopping at the first true value.  (or) is #f."},
	{Name: "begin", Formals: "(. exprs)", Min: 0, Max: Variadic, Special: true, Tail: true, Fn: opBegin,
		Doc: "Evaluates exprs in order and yields the last value."},
	{Name: "let", Formals: "(bindings . body)", Min: 1, Max: Variadic, Special: true, Tail: true, Fn: opLet,
		Doc: "Binds each (name expr) in bindings in a new environment and evaluates body there."},
	{Name: "define", Formals: "(target . body)", Min: 1, Max: Variadic, Special: true, Fn: opDefine,
		Doc: `Binds a name in the current environment.  (define name expr) binds the
		value of expr; (define (name . params) body...) binds a procedure.`},
	{Name: "set!", Formals: "(name expr)", Min: 2, Max: 2, Special: true, Fn: opSet,
		Doc: "Assigns the value of expr to the nearest existing binding of name."},
	{Name: "lambda", Formals: "(params . body)", Min: 1, Max: Variadic, Special: true, Fn: opLambda,
		Doc: `Returns a procedure.  Params is a list of names, a dotted list whose
		last name collects the remaining arguments, or one name collecting all of
		them.`},
	{Name: "special", Formals: "(params . body)", Min: 1, Max: Variadic, Special: true, Fn: opSpecial,
		Doc: `Returns a user-defined special form.  Its operands are bound
		unevaluated, the body runs in a new environment and its value is then
		evaluated in the caller's environment.`},
}

// quoted returns an expression evaluating to v.
func (in *Interpreter) quoted(v Value) (Value, error) {
	switch v.tag {
	case TagPair, TagSymbol:
		return in.List(in.quoteForm, v)
	}
	return v, nil
}

// sequence evaluates every form of body except the last and returns the last
// one unevaluated.
func (in *Interpreter) sequence(body, env Value) (Value, error) {
	if body.IsNil() {
		return Nil, nil
	}
	for ; in.cdr(body).IsPair(); body = in.cdr(body) {
		if _, err := in.Eval(in.car(body), env); err != nil {
			return Nil, err
		}
	}
	return in.car(body), nil
}

func opQuote(in *Interpreter, args, env Value) (Value, error) {
	return in.car(args), nil
}

func opIf(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 3)
	test, err := in.Eval(a[0], env)
	if err != nil {
		return Nil, err
	}
	if test.IsTrue() {
		return a[1], nil
	}
	if len(a) > 2 {
		return a[2], nil
	}
	return Nil, nil
}

func opCond(in *Interpreter, args, env Value) (Value, error) {
	for ; args.IsPair(); args = in.cdr(args) {
		clause := in.car(args)
		if !clause.IsPair() {
			return Nil, typeErrorf("cond clause is not a list: %s", in.String(clause))
		}
		if in.car(clause) == in.symElse {
			return in.sequence(in.cdr(clause), env)
		}
		test, err := in.Eval(in.car(clause), env)
		if err != nil {
			return Nil, err
		}
		if !test.IsTrue() {
			continue
		}
		if in.cdr(clause).IsNil() {
			return in.quoted(test)
		}
		return in.sequence(in.cdr(clause), env)
	}
	return Nil, nil
}

func opAnd(in *Interpreter, args, env Value) (Value, error) {
	if args.IsNil() {
		return True, nil
	}
	for ; in.cdr(args).IsPair(); args = in.cdr(args) {
		v, err := in.Eval(in.car(args), env)
		if err != nil {
			return Nil, err
		}
		if !v.IsTrue() {
			return v, nil
		}
	}
	return in.car(args), nil
}

func opOr(in *Interpreter, args, env Value) (Value, error) {
	if args.IsNil() {
		return False, nil
	}
	for ; in.cdr(args).IsPair(); args = in.cdr(args) {
		v, err := in.Eval(in.car(args), env)
		if err != nil {
			return Nil, err
		}
		if v.IsTrue() {
			return in.quoted(v)
		}
	}
	return in.car(args), nil
}

func opBegin(in *Interpreter, args, env Value) (Value, error) {
	return in.sequence(args, env)
}

// opLet rewrites (let ((x a) (y b)) body...) as ((lambda (x y) body...) a b)
// and returns the application for evaluation in the caller's environment.
func opLet(in *Interpreter, args, env Value) (Value, error) {
	bindings, body := in.car(args), in.cdr(args)
	g := in.Protect(Nil, Nil, Nil, Nil)
	defer g.Release()
	var params, exprs, lastParam, lastExpr Value
	for b := bindings; !b.IsNil(); b = in.cdr(b) {
		if !b.IsPair() {
			return Nil, typeErrorf("let bindings are not a list: %s", in.String(bindings))
		}
		name, expr, err := in.letBinding(in.car(b))
		if err != nil {
			return Nil, err
		}
		p, err := in.Cons(name, Nil)
		if err != nil {
			return Nil, err
		}
		if params.IsNil() {
			params = p
			g.Set(0, params)
		} else {
			in.setCdr(lastParam, p)
		}
		lastParam = p
		e, err := in.Cons(expr, Nil)
		if err != nil {
			return Nil, err
		}
		if exprs.IsNil() {
			exprs = e
			g.Set(1, exprs)
		} else {
			in.setCdr(lastExpr, e)
		}
		lastExpr = e
	}
	lambda, err := in.Cons(params, body)
	if err != nil {
		return Nil, err
	}
	g.Set(2, lambda)
	lambda, err = in.Cons(in.lambdaForm, lambda)
	if err != nil {
		return Nil, err
	}
	g.Set(3, lambda)
	return in.Cons(lambda, exprs)
}

// letBinding accepts (name expr), (name) or a bare name.  The latter two
// bind ().
func (in *Interpreter) letBinding(b Value) (Value, Value, error) {
	if b.IsSymbol() {
		return b, Nil, nil
	}
	n, ok := in.listLength(b)
	if !ok || n < 1 || n > 2 || !in.car(b).IsSymbol() {
		return Nil, Nil, typeErrorf("invalid let binding: %s", in.String(b))
	}
	if n == 1 {
		return in.car(b), Nil, nil
	}
	return in.car(b), in.car(in.cdr(b)), nil
}

func opDefine(in *Interpreter, args, env Value) (Value, error) {
	target, rest := in.car(args), in.cdr(args)
	switch target.tag {
	case TagSymbol:
		n, _ := in.listLength(rest)
		if n != 1 {
			return Nil, arityErrorf("define of a variable takes one value expression")
		}
		val, err := in.Eval(in.car(rest), env)
		if err != nil {
			return Nil, err
		}
		if err := in.Define(target, val, env); err != nil {
			return Nil, err
		}
		return target, nil
	case TagPair:
		name, params := in.car(target), in.cdr(target)
		if !name.IsSymbol() {
			return Nil, typeErrorf("procedure name is not a symbol: %s", in.String(name))
		}
		if err := in.checkParams(params); err != nil {
			return Nil, err
		}
		lambda, err := in.Cons(params, rest)
		if err != nil {
			return Nil, err
		}
		proc, err := in.makeClosure(TagClosure, lambda, env)
		if err != nil {
			return Nil, err
		}
		g := in.Protect(proc)
		defer g.Release()
		if err := in.Define(name, proc, env); err != nil {
			return Nil, err
		}
		return name, nil
	default:
		return Nil, typeErrorf("cannot define %s", in.String(target))
	}
}

func opSet(in *Interpreter, args, env Value) (Value, error) {
	a := in.args(args, 2)
	if !a[0].IsSymbol() {
		return Nil, typeErrorf("cannot set non-symbol: %s", in.String(a[0]))
	}
	val, err := in.Eval(a[1], env)
	if err != nil {
		return Nil, err
	}
	if err := in.Set(a[0], val, env); err != nil {
		return Nil, err
	}
	return val, nil
}

// checkParams verifies that every element of a parameter list is a symbol.
func (in *Interpreter) checkParams(params Value) error {
	p := params
	for ; p.IsPair(); p = in.cdr(p) {
		if !in.car(p).IsSymbol() {
			return typeErrorf("parameter is not a symbol: %s", in.String(in.car(p)))
		}
	}
	if !p.IsNil() && !p.IsSymbol() {
		return typeErrorf("invalid parameter list: %s", in.String(params))
	}
	return nil
}

// The operand list of lambda and special is already (params . body), so it
// becomes the closure payload directly.

func opLambda(in *Interpreter, args, env Value) (Value, error) {
	if err := in.checkParams(in.car(args)); err != nil {
		return Nil, err
	}
	return in.makeClosure(TagClosure, args, env)
}

func opSpecial(in *Interpreter, args, env Value) (Value, error) {
	if err := in.checkParams(in.car(args)); err != nil {
		return Nil, err
	}
	return in.makeClosure(TagSpecialClosure, args, env)
}
