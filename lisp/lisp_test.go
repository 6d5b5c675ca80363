// Copyright © 2026 The LISPE authors

package lisp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/lispetest"
)

func TestNumbers(t *testing.T) {
	tests := lispetest.TestSuite{
		{"arithmetic", lispetest.TestSequence{
			{"(+)", "0", ""},
			{"(+ 1 2 3)", "6", ""},
			{"(- 10 1 2)", "7", ""},
			{"(- 5)", "-5", ""},
			{"(*)", "1", ""},
			{"(* 2 3.5)", "7", ""},
			{"(/ 2)", "0.5", ""},
			{"(/ 12 2 3)", "2", ""},
			{"(/ 1 0)", "+Inf", ""},
			{"(+ 'a 1)", "type-error: +: not a number: a", ""},
			{"(-)", "arity-error: -: too few arguments: 0 (minimum 1)", ""},
		}},
		{"complex", lispetest.TestSequence{
			{"(+ 1 2+3i)", "3+3i", ""},
			{"(* 2i 2i)", "-4+0i", ""},
			{"(- 1+1i 1+1i)", "0+0i", ""},
			{"(make-rectangular 1 2)", "1+2i", ""},
			{"(make-rectangular 1 2i)", "domain-error: make-rectangular: not a real number: 0+2i", ""},
			{"(real-part 3+4i)", "3", ""},
			{"(imag-part 3-4i)", "-4", ""},
			{"(imag-part 5)", "0", ""},
		}},
		{"comparison", lispetest.TestSequence{
			{"(< 1 2 3)", "#t", ""},
			{"(< 1 3 2)", "#f", ""},
			{"(> 3 2)", "#t", ""},
			{"(<= 1 1 2)", "#t", ""},
			{"(>= 3 3 1)", "#t", ""},
			{"(= 1 1.0)", "#t", ""},
			{"(= 1 1+0i)", "#t", ""},
			{"(< 1 2+0i)", "#t", ""},
			{"(< 1 2i)", "domain-error: <: cannot order complex numbers: 1+0i, 0+2i", ""},
			{"(< 1 'x)", "type-error: <: not a number: x", ""},
		}},
		{"predicates", lispetest.TestSequence{
			{"(number? 1)", "#t", ""},
			{"(number? 'a)", "#f", ""},
			{"(complex? 1)", "#t", ""},
			{"(real? 1+0i)", "#t", ""},
			{"(real? 1+1i)", "#f", ""},
			{"(integer? 2.0)", "#t", ""},
			{"(integer? 2.5)", "#f", ""},
			{"(integer? 'a)", "#f", ""},
			{"(exact? 3)", "#t", ""},
			{"(exact? 'a)", "type-error: exact?: not a number: a", ""},
		}},
	}
	lispetest.RunTestSuite(t, tests)
}

func TestLists(t *testing.T) {
	tests := lispetest.TestSuite{
		{"pairs", lispetest.TestSequence{
			{"(cons 1 2)", "(1 . 2)", ""},
			{"(cons 1 '(2))", "(1 2)", ""},
			{"(car '(1 2))", "1", ""},
			{"(cdr '(1 2))", "(2)", ""},
			{"(car '())", "type-error: car: car of non-pair: ()", ""},
			{"(cdr 1)", "type-error: cdr: cdr of non-pair: 1", ""},
			{"(car)", "arity-error: car: too few arguments: 0 (minimum 1)", ""},
			{"(car '(1) '(2))", "arity-error: car: too many arguments: 2 (maximum 1)", ""},
			{"(list)", "()", ""},
			{"(list 1 (list 2 3))", "(1 (2 3))", ""},
			{"(length '(1 2 3))", "3", ""},
			{"(length '())", "0", ""},
			{"(length '(1 . 2))", "type-error: length: not a proper list: (1 . 2)", ""},
		}},
		{"mutation", lispetest.TestSequence{
			{"(define p (cons 1 2))", "p", ""},
			{"(set-car! p 3)", "(3 . 2)", ""},
			{"(set-cdr! p '(4))", "(3 4)", ""},
			{"p", "(3 4)", ""},
			{"(set-car! '() 1)", "type-error: set-car!: set-car! of non-pair: ()", ""},
		}},
		{"assoc", lispetest.TestSequence{
			{"(assoc 2 '((1 a) (2 b)))", "(2 b)", ""},
			{"(assoc 3 '((1 a)))", "#f", ""},
			{"(assoc 1+0i '((1 one)))", "(1 one)", ""},
			{"(assoc '(x) '(((x) . y)))", "((x) . y)", ""},
			{"(assoc 1 '(1))", "type-error: assoc: association list entry is not a pair: 1", ""},
		}},
		{"type predicates", lispetest.TestSequence{
			{"(null? '())", "#t", ""},
			{"(null? 0)", "#f", ""},
			{"(pair? '(1))", "#t", ""},
			{"(pair? '())", "#f", ""},
			{"(symbol? 'a)", "#t", ""},
			{"(symbol? 1)", "#f", ""},
			{"(atom? 1)", "#t", ""},
			{"(atom? '(1))", "#f", ""},
			{"(boolean? #f)", "#t", ""},
			{"(boolean? '())", "#f", ""},
			{"(procedure? car)", "#t", ""},
			{"(procedure? if)", "#t", ""},
			{"(procedure? (lambda (x) x))", "#t", ""},
			{"(procedure? 'car)", "#f", ""},
			{"(not '())", "#t", ""},
			{"(not #f)", "#t", ""},
			{"(not 0)", "#f", ""},
		}},
	}
	lispetest.RunTestSuite(t, tests)
}

func TestEquality(t *testing.T) {
	tests := lispetest.TestSuite{
		{"equivalence", lispetest.TestSequence{
			{"(eq? 'a 'a)", "#t", ""},
			{"(eq? '() '())", "#t", ""},
			{"(eq? 1 1)", "#f", ""},
			{"(define one 1)", "one", ""},
			{"(eq? one one)", "#t", ""},
			{"(eqv? 1 1)", "#t", ""},
			{"(eqv? 1 1+0i)", "#f", ""},
			{"(eqv? '(1) '(1))", "#f", ""},
			{"(equal? 1 1+0i)", "#t", ""},
			{"(equal? '(1 (2 3)) (list 1 (list 2 3)))", "#t", ""},
			{"(equal? '(1 2) '(1 2 3))", "#f", ""},
			{"(equal? '(1 . 2) '(1 . 2))", "#t", ""},
			{"(equal? car car)", "#t", ""},
		}},
	}
	lispetest.RunTestSuite(t, tests)
}

func TestSpecialForms(t *testing.T) {
	tests := lispetest.TestSuite{
		{"quote", lispetest.TestSequence{
			{"'a", "a", ""},
			{"(quote (a b))", "(a b)", ""},
			{"''a", "(quote a)", ""},
			{"(quote)", "arity-error: quote: too few arguments: 0 (minimum 1)", ""},
		}},
		{"if", lispetest.TestSequence{
			{"(if #t 'yes 'no)", "yes", ""},
			{"(if #f 'yes 'no)", "no", ""},
			{"(if #f 1)", "()", ""},
			{"(if '() 1 2)", "2", ""},
			{"(if 0 1 2)", "1", ""},
			{"(if (car '()) 1 2)", "type-error: car: car of non-pair: ()", ""},
			{"(if 1)", "arity-error: if: too few arguments: 1 (minimum 2)", ""},
		}},
		{"cond", lispetest.TestSequence{
			{"(define x 1)", "x", ""},
			{"(cond ((= x 2) 'two) ((= x 1) 'one) (else 'other))", "one", ""},
			{"(cond (#f 1) (else 'z))", "z", ""},
			{"(cond (#f 1))", "()", ""},
			{"(cond)", "()", ""},
			{"(cond ((assoc 'b '((a 1) (b 2)))))", "(b 2)", ""},
			{"(cond (x (display 'a) 'b))", "b", "a"},
			{"(cond 1)", "type-error: cond: cond clause is not a list: 1", ""},
		}},
		{"and or", lispetest.TestSequence{
			{"(and)", "#t", ""},
			{"(and 1 2 3)", "3", ""},
			{"(and 1 #f (car '()))", "#f", ""},
			{"(or)", "#f", ""},
			{"(or #f 2)", "2", ""},
			{"(or 1 (car 1))", "1", ""},
			{"(or '(a) 2)", "(a)", ""},
			{"(or #f '())", "()", ""},
		}},
		{"let", lispetest.TestSequence{
			{"(let ((a 1) (b 2)) (+ a b))", "3", ""},
			{"(let () 5)", "5", ""},
			{"(let (c) c)", "()", ""},
			{"(let ((a 1)) (define b 2) (+ a b))", "3", ""},
			{"(let ((a 1)) (let ((a 2) (b a)) (list a b)))", "(2 1)", ""},
			{"(let ((1 2)) 3)", "type-error: let: invalid let binding: (1 2)", ""},
		}},
		{"begin", lispetest.TestSequence{
			{"(begin)", "()", ""},
			{"(begin 1 2 3)", "3", ""},
			{"(begin (display 1) (display 2) 3)", "3", "12"},
		}},
		{"define set!", lispetest.TestSequence{
			{"(define x 1)", "x", ""},
			{"(set! x 10)", "10", ""},
			{"x", "10", ""},
			{"(define x 2)", "x", ""},
			{"x", "2", ""},
			{"(set! nope 1)", "unbound-variable: set!: unbound variable: nope", ""},
			{"nope", "unbound-variable: unbound variable: nope", ""},
			{"(define 1 2)", "type-error: define: cannot define 1", ""},
			{"(define y 1 2)", "arity-error: define: define of a variable takes one value expression", ""},
			{"(set! 1 2)", "type-error: set!: cannot set non-symbol: 1", ""},
		}},
	}
	lispetest.RunTestSuite(t, tests)
}

func TestProcedures(t *testing.T) {
	tests := lispetest.TestSuite{
		{"lambda", lispetest.TestSequence{
			{"((lambda (x) (* x 2)) 21)", "42", ""},
			{"((lambda args args) 1 2)", "(1 2)", ""},
			{"((lambda (a . rest) rest) 1 2 3)", "(2 3)", ""},
			{"((lambda (a . rest) rest) 1)", "()", ""},
			{"((lambda (x) x))", "arity-error: lambda: too few arguments", ""},
			{"((lambda () 1) 2)", "arity-error: lambda: too many arguments", ""},
			{"((lambda ()))", "()", ""},
			{"(lambda (1) 1)", "type-error: lambda: parameter is not a symbol: 1", ""},
			{"(lambda (x) x)", "#<lambda (x)>", ""},
			{"(lambda args args)", "#<lambda args>", ""},
		}},
		{"define procedures", lispetest.TestSequence{
			{"(define (f x) (* x 2))", "f", ""},
			{"(f 21)", "42", ""},
			{"f", "#<lambda (x)>", ""},
			{"(f 1 2)", "arity-error: f: too many arguments", ""},
			{"(define (g . xs) xs)", "g", ""},
			{"(g)", "()", ""},
			{"(g 1 2)", "(1 2)", ""},
			{"car", "#<builtin car>", ""},
			{"if", "#<special if>", ""},
			{"(1 2)", "type-error: not a procedure: 1", ""},
			{"(define z 3)", "z", ""},
			{"(z 1)", "type-error: z: not a procedure: 3", ""},
		}},
		{"closures", lispetest.TestSequence{
			{"(define (make-counter) (let ((n 0)) (lambda () (set! n (+ n 1)) n)))", "make-counter", ""},
			{"(define c (make-counter))", "c", ""},
			{"(c)", "1", ""},
			{"(c)", "2", ""},
			{"(define d (make-counter))", "d", ""},
			{"(d)", "1", ""},
			{"(c)", "3", ""},
		}},
		{"scope", lispetest.TestSequence{
			{"(define y 1)", "y", ""},
			{"((lambda (y) y) 2)", "2", ""},
			{"y", "1", ""},
			{"(define (h) (define y 5) y)", "h", ""},
			{"(h)", "5", ""},
			{"y", "1", ""},
			{"(define (k) (set! y 7))", "k", ""},
			{"(k)", "7", ""},
			{"y", "7", ""},
		}},
		{"special closures", lispetest.TestSequence{
			{"(define when (special (test . body) (list 'if test (cons 'begin body))))", "when", ""},
			{"(when (= 1 1) 'yes)", "yes", ""},
			{"(when #f 'yes)", "()", ""},
			{"(define x 1)", "x", ""},
			{"(when #t (set! x 2) (display x) x)", "2", "2"},
			{"when", "#<special-closure (test . body)>", ""},
			{"(procedure? when)", "#t", ""},
		}},
		{"apply eval", lispetest.TestSequence{
			{"(apply + 1 2 '(3 4))", "10", ""},
			{"(apply car '((1 2)))", "1", ""},
			{"(apply (lambda args args) '())", "()", ""},
			{"(apply + 1 2)", "type-error: apply: last argument to apply is not a proper list: 2", ""},
			{"(apply 1 '())", "type-error: apply: not a procedure: 1", ""},
			{"(eval '(+ 1 2))", "3", ""},
			{"(define x 10)", "x", ""},
			{"(eval 'x)", "10", ""},
			{"(let ((x 2)) (eval 'x))", "2", ""},
		}},
		{"output", lispetest.TestSequence{
			{"(display 42)", "()", "42"},
			{"(display '(1 . 2))", "()", "(1 . 2)"},
			{"(begin (display 'a) (newline) 7)", "7", "a\n"},
			{"(error 'oops 1)", "user-error: error: oops 1", ""},
			{"(error)", "user-error: error: ", ""},
			{"(gc)", "()", ""},
		}},
		{"body", lispetest.TestSequence{
			{"(define (f x) (* x 2))", "f", ""},
			{"(body f)", "((x) (* x 2))", ""},
			{"(body (lambda args args))", "(args args)", ""},
			{"(define unless (special (test . body) (list 'if test () (cons 'begin body))))", "unless", ""},
			{"(body unless)", "((test . body) (list (quote if) test () (cons (quote begin) body)))", ""},
			{"(body car)", "()", ""},
			{"(body if)", "()", ""},
			{"(body 1)", "type-error: body: not a procedure: 1", ""},
		}},
	}
	lispetest.RunTestSuite(t, tests)
}

func TestQuit(t *testing.T) {
	in := lispetest.NewInterpreter(t)
	_, err := in.LoadString("test", "(define a 1) (quit) (define a 2)")
	require.ErrorIs(t, err, lisp.ErrQuit)
	assert.Empty(t, lisp.ErrorCondition(err))
	assert.False(t, lisp.IsFatal(err))
	assert.Equal(t, "1", lispetest.EvalString(t, in, "a"))

	_, err = in.LoadString("test", "(define (f) (list 1 (quit))) (f)")
	require.ErrorIs(t, err, lisp.ErrQuit)
	assert.Zero(t, in.Stack.Height())
	assert.Zero(t, in.ProtectDepth())

	_, err = in.LoadString("test", "(quit 0)")
	assert.Equal(t, lisp.CondArity, lisp.ErrorCondition(err))
}

func TestErrorReset(t *testing.T) {
	in := lispetest.NewInterpreter(t)
	_, err := in.LoadString("test", "(define (f x) (list (car x))) (f '())")
	require.Error(t, err)
	assert.Equal(t, lisp.CondType, lisp.ErrorCondition(err))
	assert.Equal(t, "type-error: car: car of non-pair: ()", err.Error())
	assert.Zero(t, in.ProtectDepth())
	assert.Zero(t, in.Stack.Height())

	var lerr *lisp.Error
	require.ErrorAs(t, err, &lerr)
	require.NotNil(t, lerr.Stack)
	names := make([]string, len(lerr.Stack.Frames))
	for i, f := range lerr.Stack.Frames {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"list", "car"}, names)

	var trace strings.Builder
	_, err = lerr.WriteTrace(&trace)
	require.NoError(t, err)
	assert.Contains(t, trace.String(), "height 1: car [builtin]")

	assert.Equal(t, "3", lispetest.EvalString(t, in, "(+ 1 2)"))
	assert.Equal(t, "#<lambda (x)>", lispetest.EvalString(t, in, "f"))
}

func TestSyntaxErrorReset(t *testing.T) {
	in := lispetest.NewInterpreter(t)
	_, err := in.LoadString("test", "(define a 1)\n(1 2")
	require.Error(t, err)
	assert.Equal(t, "test:2:1: syntax-error: unmatched (", err.Error())
	assert.Zero(t, in.ProtectDepth())
	assert.Equal(t, "1", lispetest.EvalString(t, in, "a"))
}

func TestTailCalls(t *testing.T) {
	in := lispetest.NewInterpreter(t, lisp.WithMaxStackHeight(50))
	lispetest.EvalString(t, in, `
(define (loop n)
  (if (= n 0)
      'done
      (loop (- n 1))))`)
	assert.Equal(t, "done", lispetest.EvalString(t, in, "(loop 100000)"))
	assert.LessOrEqual(t, in.Stack.Peak, 3)
	assert.GreaterOrEqual(t, in.Stack.TailCalls, 100000)

	// Mutual recursion through cond and and is also bounded.
	lispetest.EvalString(t, in, `
(define (even n) (cond ((= n 0) #t) (else (odd (- n 1)))))
(define (odd n) (and (not (= n 0)) (even (- n 1))))`)
	assert.Equal(t, "#t", lispetest.EvalString(t, in, "(even 10000)"))
	assert.LessOrEqual(t, in.Stack.Peak, 3)
}

func TestStackOverflow(t *testing.T) {
	in := lispetest.NewInterpreter(t, lisp.WithMaxStackHeight(100))
	lispetest.EvalString(t, in, `
(define (depth n)
  (if (= n 0)
      0
      (+ 1 (depth (- n 1)))))`)
	assert.Equal(t, "10", lispetest.EvalString(t, in, "(depth 10)"))

	_, err := in.LoadString("test", "(depth 1000)")
	require.Error(t, err)
	assert.Equal(t, lisp.CondStackOverflow, lisp.ErrorCondition(err))
	assert.False(t, lisp.IsFatal(err))
	assert.Zero(t, in.Stack.Height())
	assert.Zero(t, in.ProtectDepth())

	assert.Equal(t, "20", lispetest.EvalString(t, in, "(depth 20)"))
}

func TestResourceExhaustion(t *testing.T) {
	in := lispetest.NewInterpreter(t, lisp.WithCellCapacity(2000))
	_, err := in.LoadString("test", `
(define (grow acc) (grow (cons 1 acc)))
(grow '())`)
	require.Error(t, err)
	assert.True(t, lisp.IsFatal(err))
	assert.Contains(t, err.Error(), "out of cells")
	assert.NotZero(t, in.LastGC().Cycle)
}

func TestCollectionDuringEvaluation(t *testing.T) {
	var cycles int
	in := lispetest.NewInterpreter(t,
		lisp.WithCellCapacity(20000),
		lisp.WithNumberCapacity(2000),
		lisp.WithGCHook(func(lisp.GCStats) { cycles++ }),
	)
	lispetest.EvalString(t, in, lispetest.BenchmarkSource)
	assert.Equal(t, "610", lispetest.EvalString(t, in, "(fib 15)"))
	assert.Equal(t, "125250-125250i", lispetest.EvalString(t, in, "(sum (build 500 '()))"))
	assert.NotZero(t, cycles)

	stats := in.Collect()
	assert.Equal(t, stats.Cells.Capacity, stats.Cells.Live+stats.Cells.Free)
	assert.Equal(t, stats.Numbers.Capacity, stats.Numbers.Live+stats.Numbers.Free)
}

func TestPrintCycle(t *testing.T) {
	in := lispetest.NewInterpreter(t, lisp.WithCellCapacity(600))
	lispetest.EvalString(t, in, "(define c (list 1 2))")
	out := lispetest.EvalString(t, in, "(begin (set-cdr! (cdr c) c) c)")
	assert.True(t, strings.HasPrefix(out, "(1 2 1 2 "))
	assert.True(t, strings.HasSuffix(out, " ...)"))
	assert.Equal(t, "#t", lispetest.EvalString(t, in, "(eq? c (cdr (cdr c)))"))
}

func TestCyclicLists(t *testing.T) {
	in := lispetest.NewInterpreter(t, lisp.WithCellCapacity(600))
	lispetest.EvalString(t, in, `
(define c (list 1 2))
(set-cdr! (cdr c) c)
(define d (list 1 2))
(set-cdr! (cdr d) d)`)
	assert.Equal(t, "#t", lispetest.EvalString(t, in, "(equal? c c)"))
	assert.Equal(t, "#f", lispetest.EvalString(t, in, "(equal? c '(1 2))"))

	for _, expr := range []string{"(length c)", "(equal? c d)", "(assoc 1 c)", "(apply + c)"} {
		_, err := in.LoadString("test", expr)
		require.Error(t, err, expr)
		assert.Equal(t, lisp.CondType, lisp.ErrorCondition(err), expr)
		assert.Zero(t, in.ProtectDepth(), expr)
	}
	_, err := in.LoadString("test", "(equal? c d)")
	assert.EqualError(t, err, "type-error: equal?: cannot compare cyclic structure")
}

func TestCustomBuiltins(t *testing.T) {
	square := &lisp.Builtin{
		Name:    "square",
		Formals: "(x)",
		Min:     1,
		Max:     1,
		Fn: func(in *lisp.Interpreter, args, env lisp.Value) (lisp.Value, error) {
			x, err := in.Car(args)
			if err != nil {
				return lisp.Nil, err
			}
			n, err := in.NumberOf(x)
			if err != nil {
				return lisp.Nil, err
			}
			return in.MakeReal(n.Real() * n.Real())
		},
	}
	in := lispetest.NewInterpreter(t, lisp.WithBuiltins(square))
	assert.Equal(t, "81", lispetest.EvalString(t, in, "(square 9)"))
	assert.Equal(t, "#<builtin square>", lispetest.EvalString(t, in, "square"))
	_, err := in.LoadString("test", "(square 'a)")
	assert.EqualError(t, err, "type-error: square: not a number: a")
	v, err := in.LoadString("test", "square")
	require.NoError(t, err)
	b, ok := in.Builtin(v)
	require.True(t, ok)
	assert.Equal(t, "1", b.Arity())
}

func BenchmarkEval(b *testing.B) {
	lispetest.RunBenchmark(b, lispetest.BenchmarkSource)
}
