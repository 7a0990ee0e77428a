/*
   Copyright 2024 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package dpt

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// Span is the ephemeral tracing handle described by spec.md §3's `span`
// attribute: never persisted, re-homed when a subplan is re-parented into an
// active plan, and closed when the owning plan exits.
type Span interface {
	// Child opens a new nested span below this one, named for the child plan.
	Child(ctx context.Context, name string) (context.Context, Span)
	// Event records a structured debug event against this span (insertion,
	// removal, transition firing, behaviour callback invocation, tick
	// boundaries — per spec.md §6's Observability contract).
	Event(name string, attrs ...Attr)
	// End closes the span. Idempotent.
	End()
}

// Attr is a structured key/value pair attached to a debug Event.
type Attr struct {
	Key   string
	Value any
}

// Tracer opens the root span for a tree. Configuration.Tracer defaults to
// NoopTracer{}, so the core never performs tracing I/O unless a caller opts in.
type Tracer interface {
	Start(ctx context.Context, name string) (context.Context, Span)
}

// NoopTracer discards every span and event. It is the zero-cost default.
type NoopTracer struct{}

func (NoopTracer) Start(ctx context.Context, _ string) (context.Context, Span) { return ctx, noopSpan{} }

type noopSpan struct{}

func (noopSpan) Child(ctx context.Context, _ string) (context.Context, Span) { return ctx, noopSpan{} }
func (noopSpan) Event(string, ...Attr)                                      {}
func (noopSpan) End()                                                       {}

// OtelTracer wraps an OpenTelemetry tracer, following the same thin-wrapper
// idiom goa-ai's ClueTracer/clueSpan use over go.opentelemetry.io/otel/trace:
// the engine never imports a concrete exporter, only the trace API, and the
// caller wires up the provider (via otel.SetTracerProvider or otherwise)
// before constructing one of these.
type OtelTracer struct {
	tracer oteltrace.Tracer
}

// NewOtelTracer constructs a Tracer backed by the named OTEL tracer, reading
// from the global TracerProvider (configure it via otel.SetTracerProvider
// before ticking a tree that uses this).
func NewOtelTracer(instrumentationName string) OtelTracer {
	return OtelTracer{tracer: otel.Tracer(instrumentationName)}
}

func (t OtelTracer) Start(ctx context.Context, name string) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, otelSpan{ctx: ctx, tracer: t.tracer, span: span}
}

type otelSpan struct {
	ctx    context.Context
	tracer oteltrace.Tracer
	span   oteltrace.Span
}

func (s otelSpan) Child(ctx context.Context, name string) (context.Context, Span) {
	childCtx, span := s.tracer.Start(ctx, name)
	return childCtx, otelSpan{ctx: childCtx, tracer: s.tracer, span: span}
}

func (s otelSpan) Event(name string, attrs ...Attr) {
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		kv = append(kv, attrsToKeyValue(a))
	}
	s.span.AddEvent(name, oteltrace.WithAttributes(kv...))
}

func (s otelSpan) End() { s.span.End() }

func attrsToKeyValue(a Attr) attribute.KeyValue {
	switch v := a.Value.(type) {
	case string:
		return attribute.String(a.Key, v)
	case bool:
		return attribute.Bool(a.Key, v)
	case int:
		return attribute.Int(a.Key, v)
	case int64:
		return attribute.Int64(a.Key, v)
	case float64:
		return attribute.Float64(a.Key, v)
	default:
		return attribute.String(a.Key, fmt.Sprint(v))
	}
}
