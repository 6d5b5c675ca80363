// Copyright © 2026 The LISPE authors

package profiler

import (
	"context"
	"errors"

	"go.opencensus.io/trace"

	"github.com/luthersystems/lispe/lisp"
)

var _ lisp.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	currentContext context.Context
}

// NewOpenCensusAnnotator returns a profiler recording an OpenCensus span
// for each procedure application.  Spans are children of the span in
// parentContext.
func NewOpenCensusAnnotator(in *lisp.Interpreter, parentContext context.Context, opts ...Option) *ocAnnotator {
	p := &ocAnnotator{
		profiler: profiler{
			in: in,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

// EnableWithContext enables the profiler with spans parented by ctx.
func (p *ocAnnotator) EnableWithContext(ctx context.Context) error {
	if ctx == nil {
		return errors.New("set a context to use this function")
	}
	p.currentContext = ctx
	return p.Enable()
}

func (p *ocAnnotator) Enable() error {
	p.in.Profiler = p
	if p.currentContext == nil {
		return errors.New("opencensus annotator has no parent context")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Start(frame *lisp.CallFrame) func() {
	if p.skipTrace(frame) {
		return func() {}
	}
	oldContext := p.currentContext
	prettyLabel, funName := p.prettyFunName(frame)
	var span *trace.Span
	p.currentContext, span = trace.StartSpan(p.currentContext, prettyLabel)
	span.AddAttributes(
		trace.StringAttribute("code.function", funName),
		trace.StringAttribute("code.namespace", frame.Kind.String()),
	)
	return func() {
		span.End()
		// restore the parent span context
		p.currentContext = oldContext
	}
}
