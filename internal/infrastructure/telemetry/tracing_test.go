package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func setupGlobalRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = tp.Shutdown(context.Background())
	})
	return recorder
}

func TestStartServiceSpan(t *testing.T) {
	recorder := setupGlobalRecorder(t)

	_, span := StartServiceSpan(context.Background(), "purchase_transaction", "void",
		WithAttribute(SpanAttrHeaderType, "pp"),
		WithSpanKind(trace.SpanKindServer),
	)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "purchase_transaction.void", ended[0].Name())
	assert.Equal(t, trace.SpanKindServer, ended[0].SpanKind())
	assert.Contains(t, ended[0].Attributes(), attribute.String(SpanAttrHeaderType, "pp"))
}

func TestSetAttributes(t *testing.T) {
	recorder := setupGlobalRecorder(t)
	id := uuid.New()

	_, span := StartSpan(context.Background(), "purchase_transaction.edit")
	SetAttributes(span,
		SpanAttrHeaderID, id,
		SpanAttrLineCount, 3,
		42, "skipped non-string key",
		SpanAttrMatchCount,
	)
	SetAttribute(span, SpanAttrSupplierID, "S-1")
	span.End()

	attrs := recorder.Ended()[0].Attributes()
	assert.Contains(t, attrs, attribute.String(SpanAttrHeaderID, id.String()))
	assert.Contains(t, attrs, attribute.Int(SpanAttrLineCount, 3))
	assert.Contains(t, attrs, attribute.String(SpanAttrSupplierID, "S-1"))
	assert.Len(t, attrs, 3)
}

func TestRecordError(t *testing.T) {
	recorder := setupGlobalRecorder(t)

	_, span := StartSpan(context.Background(), "purchase_transaction.create")
	RecordError(span, nil)
	RecordError(span, errors.New("match out of range"))
	span.End()

	ended := recorder.Ended()[0]
	assert.Equal(t, codes.Error, ended.Status().Code)
	assert.Equal(t, "match out of range", ended.Status().Description)
	require.Len(t, ended.Events(), 1)
}

func TestAddEventAndSetOK(t *testing.T) {
	recorder := setupGlobalRecorder(t)

	_, span := StartSpan(context.Background(), "purchase_transaction.void")
	AddEvent(span, "already_voided", SpanAttrHeaderID, "abc")
	SetOK(span)
	span.End()

	ended := recorder.Ended()[0]
	assert.Equal(t, codes.Ok, ended.Status().Code)
	require.Len(t, ended.Events(), 1)
	assert.Equal(t, "already_voided", ended.Events()[0].Name)
}

func TestGetTraceID(t *testing.T) {
	setupGlobalRecorder(t)

	assert.Empty(t, GetTraceID(context.Background()))

	ctx, span := StartSpan(context.Background(), "purchase_transaction.get")
	defer span.End()
	assert.Len(t, GetTraceID(ctx), 32)
	assert.Equal(t, span.SpanContext().TraceID().String(), GetTraceID(ctx))
}

func TestNilSpanHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		SetAttributes(nil, SpanAttrHeaderID, "x")
		SetAttribute(nil, SpanAttrHeaderID, "x")
		RecordError(nil, errors.New("x"))
		SetOK(nil)
		AddEvent(nil, "x")
	})
}

func TestToAttribute(t *testing.T) {
	tests := []struct {
		value any
		want  attribute.Value
	}{
		{"pi", attribute.StringValue("pi")},
		{7, attribute.IntValue(7)},
		{int64(7), attribute.Int64Value(7)},
		{1.5, attribute.Float64Value(1.5)},
		{true, attribute.BoolValue(true)},
		{[]string{"a"}, attribute.StringSliceValue([]string{"a"})},
		{uuid.Nil, attribute.StringValue(uuid.Nil.String())},
		{struct{ N int }{1}, attribute.StringValue("{1}")},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, toAttribute("k", tt.value).Value)
	}
}
