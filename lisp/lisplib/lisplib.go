// Copyright © 2026 The LISPE authors

// Package lisplib is used to conveniently install the optional libraries in
// an interpreter.
package lisplib

import (
	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/lisp/lisplib/libmath"
)

// Builtins returns the builtins of every library.
func Builtins() []*lisp.Builtin {
	return libmath.Builtins()
}

// WithLibrary is a lisp.Config installing every library.
func WithLibrary() lisp.Config {
	return lisp.WithBuiltins(Builtins()...)
}
