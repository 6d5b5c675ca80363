// Copyright © 2026 The LISPE authors

package lisp

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Default arena capacities and limits.
const (
	DefaultCellCapacity   = 5000
	DefaultNumberCapacity = 3000
	DefaultSymbolCapacity = 3000
	DefaultMaxStackHeight = 10000
)

// Config is a function that configures an Interpreter before its storage is
// allocated.
type Config func(in *Interpreter) error

func checkCapacity(what string, n int) error {
	if n <= 0 || n > MaxArenaCapacity {
		return fmt.Errorf("invalid %s capacity: %d", what, n)
	}
	return nil
}

// WithCellCapacity returns a Config that sizes the cell arena to n slots.
func WithCellCapacity(n int) Config {
	return func(in *Interpreter) error {
		if err := checkCapacity("cell", n); err != nil {
			return err
		}
		in.capCells = n
		return nil
	}
}

// WithNumberCapacity returns a Config that sizes the number arena to n slots.
func WithNumberCapacity(n int) Config {
	return func(in *Interpreter) error {
		if err := checkCapacity("number", n); err != nil {
			return err
		}
		in.capNumbers = n
		return nil
	}
}

// WithSymbolCapacity returns a Config that sizes the symbol arena to n slots.
func WithSymbolCapacity(n int) Config {
	return func(in *Interpreter) error {
		if err := checkCapacity("symbol", n); err != nil {
			return err
		}
		in.capSymbols = n
		return nil
	}
}

// WithMaxStackHeight returns a Config that will prevent the interpreter from
// nesting more than n non-tail procedure applications.  A value of zero
// removes the limit.
func WithMaxStackHeight(n int) Config {
	return func(in *Interpreter) error {
		if n < 0 {
			return fmt.Errorf("invalid maximum stack height: %d", n)
		}
		in.Stack.MaxHeight = n
		return nil
	}
}

// WithStdout returns a Config that makes display and newline write to w.
func WithStdout(w io.Writer) Config {
	return func(in *Interpreter) error {
		in.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes the interpreter write debugging
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(in *Interpreter) error {
		in.Stderr = w
		return nil
	}
}

// WithLogger returns a Config that sets the logger receiving collection
// reports and warnings.
func WithLogger(log logrus.FieldLogger) Config {
	return func(in *Interpreter) error {
		in.Log = log
		return nil
	}
}

// WithReader returns a Config that makes the interpreter use r to parse
// source streams.  There is no default Reader.
func WithReader(r Reader) Config {
	return func(in *Interpreter) error {
		in.Reader = r
		return nil
	}
}

// WithProfiler returns a Config that attaches p to every procedure
// application.
func WithProfiler(p Profiler) Config {
	return func(in *Interpreter) error {
		in.Profiler = p
		return nil
	}
}

// WithBuiltins returns a Config that registers additional builtins.  They
// are bound in the global environment after the language builtins, so a
// definition with an existing name replaces it.
func WithBuiltins(defs ...*Builtin) Config {
	return func(in *Interpreter) error {
		for _, b := range defs {
			if err := b.validate(); err != nil {
				return err
			}
		}
		in.extra = append(in.extra, defs...)
		return nil
	}
}

// WithGCHook returns a Config that calls fn after every collection.
func WithGCHook(fn func(GCStats)) Config {
	return func(in *Interpreter) error {
		in.gcHook = fn
		return nil
	}
}
