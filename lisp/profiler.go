// Copyright © 2026 The LISPE authors

package lisp

// Version of the interpreter.
const Version = "0.3"

// Profiler observes procedure applications.
type Profiler interface {
	// Is the profiler enabled?
	IsEnabled() bool
	// Enable the profiler
	Enable() error
	// End the profiling session and flush any output
	Complete() error
	// Start marks the beginning of a procedure application and returns a
	// function marking its end.
	Start(frame *CallFrame) func()
}
