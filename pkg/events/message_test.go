package events

import (
	"context"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type payload struct {
	Title string `json:"title"`
}

func TestNewJSONMessage_DecodeJSON(t *testing.T) {
	msg, err := NewJSONMessage("evt-9", 2, payload{Title: "Buffet"})
	if err != nil {
		t.Fatalf("NewJSONMessage: %v", err)
	}
	if msg.Metadata.Get(MetaEventID) != "evt-9" || msg.Metadata.Get(MetaEventVersion) != "2" {
		t.Errorf("unexpected metadata %v", msg.Metadata)
	}

	got, err := DecodeJSON[payload](msg)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if got.Title != "Buffet" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	if _, err := DecodeJSON[payload](message.NewMessage("id", []byte("{"))); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestTracePropagation_RoundTrip(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background()) //nolint:errcheck
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	msg := message.NewMessage("id", nil)
	InjectTrace(ctx, msg)

	got := trace.SpanFromContext(ExtractTrace(context.Background(), msg)).SpanContext()
	if !got.IsValid() {
		t.Fatal("extracted span context is not valid")
	}
	if got.TraceID() != span.SpanContext().TraceID() {
		t.Errorf("trace ID mismatch: want %s, got %s", span.SpanContext().TraceID(), got.TraceID())
	}
}
