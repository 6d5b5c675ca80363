// Copyright © 2026 The LISPE authors

// Package profiler provides lisp.Profiler implementations which record
// procedure applications as callgrind profiles, pprof labels or trace spans.
package profiler

import (
	"fmt"

	"github.com/luthersystems/lispe/lisp"
)

// profiler is a minimal lisp.Profiler
type profiler struct {
	in         *lisp.Interpreter
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lisp.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

// Option configures a profiler.
type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	p.enabled = false
	return nil
}

func (p *profiler) Start(frame *lisp.CallFrame) func() {
	return func() {}
}

// defaultFunName returns the name an application was made under.  Anonymous
// procedures are named for the form that created them.
func defaultFunName(frame *lisp.CallFrame) string {
	if name := frame.FunName(); name != "" {
		return name
	}
	switch frame.Kind {
	case lisp.TagClosure:
		return "lambda"
	case lisp.TagSpecialClosure:
		return "special"
	}
	return ""
}

// prettyFunName returns a pretty name and original name for a frame. If there
// is no pretty name, then the pretty name is the original name.
func (p *profiler) prettyFunName(frame *lisp.CallFrame) (string, string) {
	origLabel := defaultFunName(frame)
	if origLabel == "" {
		return "", ""
	}
	prettyLabel := origLabel
	if p.funLabeler != nil {
		prettyLabel = p.funLabeler(p.in, frame)
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}
	return prettyLabel, origLabel
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(frame *lisp.CallFrame) bool {
	return !p.enabled || defaultSkipFilter(frame) || p.skipFilter != nil && p.skipFilter(frame)
}

// fileName groups applications in profiles that expect a source file.
func fileName(frame *lisp.CallFrame) string {
	return frame.Kind.String()
}
