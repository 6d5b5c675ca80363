// Copyright © 2026 The LISPE authors

package libmath_test

import (
	"testing"

	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/lisp/lisplib/libmath"
	"github.com/luthersystems/lispe/lispetest"
)

func TestMath(t *testing.T) {
	tests := lispetest.TestSuite{
		{"rounding", lispetest.TestSequence{
			{"(floor 2.5)", "2", ""},
			{"(floor -2.5)", "-3", ""},
			{"(ceiling 2.1)", "3", ""},
			{"(round 2.5)", "2", ""},
			{"(round 3.5)", "4", ""},
			{"(floor 1+1i)", "type-error: floor: argument is not a real number: 1+1i", ""},
		}},
		{"magnitude", lispetest.TestSequence{
			{"(abs -3)", "3", ""},
			{"(abs 3+4i)", "5", ""},
			{"(magnitude -5i)", "5", ""},
			{"(angle -1)", "3.141592653589793", ""},
			{"(nan? (/ 0 0))", "#t", ""},
			{"(nan? 1+2i)", "#f", ""},
		}},
		{"roots and powers", lispetest.TestSequence{
			{"(sqrt 16)", "4", ""},
			{"(sqrt -4)", "0+2i", ""},
			{"(sqrt -9+0i)", "0+3i", ""},
			{"(exp 0)", "1", ""},
			{"(log 1)", "0", ""},
			{"(log 1 10)", "0", ""},
			{"(log -1)", "0+3.141592653589793i", ""},
			{"(expt 2 10)", "1024", ""},
			{"(expt -8 2)", "64", ""},
			{"(expt 2 0.5)", "1.4142135623730951", ""},
			{"(sqrt 'x)", "type-error: sqrt: not a number: x", ""},
		}},
		{"trigonometry", lispetest.TestSequence{
			{"(sin 0)", "0", ""},
			{"(cos 0)", "1", ""},
			{"(tan 0)", "0", ""},
			{"(atan 1 1)", "0.7853981633974483", ""},
			{"(atan 1)", "0.7853981633974483", ""},
			{"(acos 1)", "0", ""},
			{"(tanh 0)", "0", ""},
			{"(atan 1i 1)", "domain-error: atan: atan of two arguments requires real numbers: 0+1i, 1", ""},
		}},
	}
	lispetest.RunTestSuite(t, tests, lisp.WithBuiltins(libmath.Builtins()...))
}
