// Copyright © 2026 The LISPE authors

package profiler

import (
	"regexp"

	"github.com/luthersystems/lispe/lisp"
)

// SkipFilter returns true for applications that should not be traced.
type SkipFilter func(frame *lisp.CallFrame) bool

func defaultSkipFilter(frame *lisp.CallFrame) bool {
	switch frame.Kind {
	case lisp.TagBuiltin, lisp.TagSpecial, lisp.TagClosure, lisp.TagSpecialClosure:
		return false
	default:
		return true
	}
}

// WithDocFilter filters to only include spans for builtins with docs that
// denote tracing.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithClosureFilter filters to only include spans for user-defined
// procedures and special forms.
func WithClosureFilter() Option {
	return WithSkipFilter(func(frame *lisp.CallFrame) bool {
		return frame.Kind != lisp.TagClosure && frame.Kind != lisp.TagSpecialClosure
	})
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// DocTrace is a magic string used to enable tracing in a profiler configured
// WithDocFilter. All builtins with a doc string that contains this string
// will be traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(frame *lisp.CallFrame) bool {
	if frame.Builtin == nil || frame.Builtin.Doc == "" {
		return true
	}
	// do not skip docs that include trace constant
	return !docTraceRegExp.MatchString(frame.Builtin.Doc)
}
