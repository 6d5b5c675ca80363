// Copyright © 2026 The LISPE authors

package profiler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/luthersystems/lispe/lisp/x/profiler"
	"github.com/luthersystems/lispe/lispetest"
)

func newExporter(t *testing.T) *tracetest.InMemoryExporter {
	exporter := tracetest.NewInMemoryExporter()
	tp := trace.NewTracerProvider(
		trace.WithSyncer(exporter),
		trace.WithSampler(trace.AlwaysSample()),
	)
	t.Cleanup(func() {
		err := tp.Shutdown(context.Background())
		assert.NoError(t, err, "TracerProvider shutdown")
	})
	otel.SetTracerProvider(tp)
	return exporter
}

func TestNewOpenTelemetryAnnotator(t *testing.T) {
	exporter := newExporter(t)
	in := newInterpreter(t)
	ppa := profiler.NewOpenTelemetryAnnotator(in, context.Background())
	require.NoError(t, ppa.Enable())
	lispetest.EvalString(t, in, testLisp)
	assert.NoError(t, ppa.Complete())

	spans := exporter.GetSpans()
	names := make(map[string]int)
	for _, s := range spans {
		names[s.Name]++
	}
	assert.Equal(t, 3, names["recurse-it"])
	assert.Equal(t, 3, names["add-it"])
	assert.Equal(t, 1, names["print-it"])
	assert.Equal(t, 3, names["+"])
	assert.Equal(t, 1, names["display"])
	assert.NotZero(t, names["if"])
}

func TestNewOpenTelemetryAnnotatorSkip(t *testing.T) {
	exporter := newExporter(t)
	in := newInterpreter(t)
	ppa := profiler.NewOpenTelemetryAnnotator(in, context.Background(),
		profiler.WithClosureFilter())
	require.NoError(t, ppa.Enable())
	lispetest.EvalString(t, in, testLisp)
	assert.NoError(t, ppa.Complete())

	spans := exporter.GetSpans()
	require.Equal(t, 7, len(spans), "Expected selective spans")
	assert.Equal(t, "recurse-it", spans[0].Name)
	assert.Equal(t, "add-it", spans[3].Name)
	assert.Equal(t, "print-it", spans[6].Name)
	assert.Contains(t, spans[6].Attributes, semconv.CodeFunction("print-it"))
	assert.Contains(t, spans[6].Attributes, semconv.CodeNamespace("procedure"))
}

func TestNewOpenTelemetryAnnotatorDocLabels(t *testing.T) {
	exporter := newExporter(t)
	in := newInterpreter(t)
	ctx := context.WithValue(context.Background(), profiler.ContextOpenTelemetryTracerKey, "square-tracer")
	ppa := profiler.NewOpenTelemetryAnnotator(in, ctx,
		profiler.WithDocFilter(),
		profiler.WithDocLabeler())
	require.NoError(t, ppa.Enable())
	assert.Equal(t, "20", lispetest.EvalString(t, in, "(+ (square 2) (square 4))"))
	assert.NoError(t, ppa.Complete())

	spans := exporter.GetSpans()
	require.Equal(t, 2, len(spans), "Expected selective spans")
	for _, s := range spans {
		assert.Equal(t, "Square_It", s.Name, "Expected custom label")
		assert.Equal(t, "square-tracer", s.InstrumentationLibrary.Name)
		assert.Contains(t, s.Attributes, semconv.CodeFunction("square"))
	}
}

func TestOpenTelemetryAnnotatorRequiresContext(t *testing.T) {
	in := newInterpreter(t)
	ppa := profiler.NewOpenTelemetryAnnotator(in, nil) //nolint:staticcheck // nil context is the error case
	assert.Error(t, ppa.Enable())
	assert.False(t, ppa.IsEnabled())
}
