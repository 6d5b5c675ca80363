// Copyright © 2026 The LISPE authors

package profiler_test

import (
	"testing"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/lispetest"
)

const testLisp = `
(define (print-it x)
  (display x)
  (newline))
(define (add-it x y)
  (+ x y))
(define (recurse-it x)
  (if (< x 4)
      (add-it x 3)
      (recurse-it (- x 1))))
(print-it (add-it (add-it 3 (recurse-it 5)) 8))
`

// square is traced by profilers filtering on doc strings.
var square = &lisp.Builtin{
	Name:    "square",
	Formals: "(x)",
	Min:     1,
	Max:     1,
	Doc:     "Returns x*x. @trace{ Square It }",
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

func newInterpreter(t *testing.T) *lisp.Interpreter {
	return lispetest.NewInterpreter(t, lisp.WithBuiltins(square))
}
