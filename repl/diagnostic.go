// Copyright © 2026 The LISPE authors

package repl

import (
	"errors"

	"github.com/luthersystems/lispe/diagnostic"
	"github.com/luthersystems/lispe/lisp"
	"github.com/luthersystems/lispe/parser/token"
)

// ErrorDiagnostic converts an evaluation or syntax error to a Diagnostic.
// Syntax errors carry a span at their location.  Each frame of the call
// stack at the point of failure becomes a note, innermost first.
func ErrorDiagnostic(err error) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  err.Error(),
	}
	var lerr *lisp.Error
	if !errors.As(err, &lerr) {
		return d
	}
	d.Message = lerr.Condition + ": " + lerr.Message
	if fn := lerr.FunName(); fn != "" {
		d.Message = lerr.Condition + ": " + fn + ": " + lerr.Message
	}
	if loc := lerr.Source; loc != nil {
		span := diagnostic.Span{File: loc.File, Line: loc.Line, Col: loc.Col}
		if loc.Path != "" {
			span.File = loc.Path
		}
		d.Spans = append(d.Spans, span)
	}
	if lerr.Stack != nil {
		for i := len(lerr.Stack.Frames) - 1; i >= 0; i-- {
			d.Notes = append(d.Notes, "in "+lerr.Stack.Frames[i].String())
		}
	}
	return d
}

func errorSource(err error) *token.Location {
	var lerr *lisp.Error
	if errors.As(err, &lerr) {
		return lerr.Source
	}
	return nil
}
