// Copyright © 2026 The LISPE authors

package profiler

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/luthersystems/lispe/lisp"
)

type contextKey string

const (
	// ContextOpenTelemetryTracerKey looks up a parent tracer name from a context key.
	ContextOpenTelemetryTracerKey contextKey = "otelParentTracer"
)

var _ lisp.Profiler = &otelAnnotator{}

type otelAnnotator struct {
	profiler
	currentContext context.Context
}

// NewOpenTelemetryAnnotator returns a profiler recording an OpenTelemetry
// span for each procedure application.
func NewOpenTelemetryAnnotator(in *lisp.Interpreter, parentContext context.Context, opts ...Option) *otelAnnotator {
	p := &otelAnnotator{
		profiler: profiler{
			in: in,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *otelAnnotator) Enable() error {
	p.in.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opentelemetry")
	}
	return p.profiler.Enable()
}

func contextTracer(ctx context.Context) trace.Tracer {
	tracerName, ok := ctx.Value(ContextOpenTelemetryTracerKey).(string)
	if !ok {
		tracerName = "lispe"
	}
	return otel.GetTracerProvider().Tracer(tracerName)
}

func (p *otelAnnotator) Start(frame *lisp.CallFrame) func() {
	if p.skipTrace(frame) {
		return func() {}
	}
	oldContext := p.currentContext
	prettyLabel, funName := p.prettyFunName(frame)
	var span trace.Span
	p.currentContext, span = contextTracer(p.currentContext).Start(p.currentContext, prettyLabel)
	span.SetAttributes(codeAttributes(frame, funName)...)
	return func() {
		span.End()
		// And pop the current context back
		p.currentContext = oldContext
	}
}

func codeAttributes(frame *lisp.CallFrame, funName string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		semconv.CodeNamespace(frame.Kind.String()),
		semconv.CodeFunction(funName),
	}
	if frame.Builtin != nil {
		attrs = append(attrs, attribute.String("lispe.builtin", frame.Builtin.Name))
	}
	return attrs
}
