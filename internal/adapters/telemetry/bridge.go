package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/scout/internal/core/ports"
)

// Bridge implements sdktrace.SpanProcessor to feed span durations into metrics.
type Bridge struct {
	recorder ports.MetricsRecorder
}

// NewBridge returns a new Bridge.
func NewBridge(recorder ports.MetricsRecorder) *Bridge {
	return &Bridge{recorder: recorder}
}

// OnStart does nothing.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.recorder == nil || !s.SpanContext().IsValid() {
		return
	}
	b.recorder.SpanFinished(s.Name(), s.EndTime().Sub(s.StartTime()), s.Status().Code == codes.Error)
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// Install registers a global TracerProvider that reports ended spans to the bridge.
func Install(bridge *Bridge) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
	return tp
}
