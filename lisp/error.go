// Copyright © 2026 The LISPE authors

package lisp

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/luthersystems/lispe/parser/token"
)

// Error conditions.  A condition classifies an Error for programmatic
// handling.
const (
	CondType          = "type-error"
	CondArity         = "arity-error"
	CondUnbound       = "unbound-variable"
	CondDomain        = "domain-error"
	CondResource      = "resource-exhausted"
	CondSyntax        = "syntax-error"
	CondStackOverflow = "stack-overflow"
	CondUser          = "user-error"
)

// ErrQuit is returned by evaluation when a program calls quit.  It unwinds
// like any other error but callers treat it as a normal end of input.
var ErrQuit = errors.New("quit")

// Error is the error type produced by the interpreter and its readers.
type Error struct {
	Condition string
	Message   string
	// Source is the location of a syntax error, when known.
	Source *token.Location
	// Stack is a copy of the call stack at the point of failure.
	Stack *CallStack
}

// Errorf returns an Error with the given condition.
func Errorf(condition string, format string, v ...interface{}) *Error {
	return &Error{
		Condition: condition,
		Message:   fmt.Sprintf(format, v...),
	}
}

// SyntaxErrorf returns a syntax-error located at loc.
func SyntaxErrorf(loc *token.Location, format string, v ...interface{}) *Error {
	err := Errorf(CondSyntax, format, v...)
	err.Source = loc
	return err
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Condition + ": " + e.Message
	if fn := e.FunName(); fn != "" {
		msg = e.Condition + ": " + fn + ": " + e.Message
	}
	if e.Source != nil {
		return fmt.Sprintf("%s: %s", e.Source, msg)
	}
	return msg
}

// FunName returns the name of the procedure executing when the error
// occurred.
func (e *Error) FunName() string {
	if e.Stack == nil {
		return ""
	}
	return e.Stack.Top().FunName()
}

// WriteTrace writes the error and a stack trace to w
func (e *Error) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	n, err := fmt.Fprintln(bw, e.Error())
	if err != nil {
		return n, err
	}
	if e.Stack != nil {
		_n, err := e.Stack.DebugPrint(bw)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ErrorCondition returns the condition of err if it wraps an *Error, and the
// empty string otherwise.
func ErrorCondition(err error) string {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Condition
	}
	return ""
}

// IsFatal reports whether err signals storage exhaustion.  The interpreter
// cannot continue after a fatal error.
func IsFatal(err error) bool {
	return ErrorCondition(err) == CondResource
}

func typeErrorf(format string, v ...interface{}) *Error {
	return Errorf(CondType, format, v...)
}

func arityErrorf(format string, v ...interface{}) *Error {
	return Errorf(CondArity, format, v...)
}
