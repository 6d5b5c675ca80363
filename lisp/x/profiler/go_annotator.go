// Copyright © 2026 The LISPE authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/luthersystems/lispe/lisp"
)

// This profiler type appends tags to pprof output if pprof is enabled.  It
// does not start pprof itself.  The pprof sampling rate is fixed at 100Hz so
// only long running programs produce meaningful label breakdowns.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ lisp.Profiler = &pprofAnnotator{}

// NewPprofAnnotator returns a profiler labeling the current goroutine with
// the name of the procedure being applied.
func NewPprofAnnotator(in *lisp.Interpreter, parentContext context.Context, opts ...Option) *pprofAnnotator {
	p := &pprofAnnotator{
		profiler: profiler{
			in: in,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	p.in.Profiler = p
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return p.profiler.Complete()
}

func (p *pprofAnnotator) Start(frame *lisp.CallFrame) func() {
	if p.skipTrace(frame) {
		return func() {}
	}
	// Contexts are kept on a stack through the returned closures rather
	// than with pprof.Do, which would need a callback around each
	// application.
	oldContext := p.currentContext
	prettyLabel, _ := p.prettyFunName(frame)
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("function", prettyLabel))
	// labels propagate to goroutines started by builtins
	pprof.SetGoroutineLabels(p.currentContext)

	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}
