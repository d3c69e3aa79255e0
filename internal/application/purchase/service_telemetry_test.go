package purchase

import (
	"context"
	"testing"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
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

func endedSpan(t *testing.T, recorder *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range recorder.Ended() {
		if span.Name() == name {
			return span
		}
	}
	require.Failf(t, "span not found", "no ended span named %q", name)
	return nil
}

func TestTransactionService_SpanStatus(t *testing.T) {
	t.Run("committed create is ok", func(t *testing.T) {
		recorder := recordSpans(t)
		f := newServiceFixture(t)

		f.createPayment("-1000")

		span := endedSpan(t, recorder, "purchase_transaction.create")
		assert.Equal(t, codes.Ok, span.Status().Code)
	})

	t.Run("rejected create carries the error code", func(t *testing.T) {
		recorder := recordSpans(t)
		f := newServiceFixture(t)
		fields := f.fields("120", "100", "20")
		fields.SupplierID = uuid.New()

		_, err := f.service.Create(f.ctx, CreateTransactionRequest{
			Type:   purchase.TypeInvoice,
			Period: "202007",
			Fields: fields,
			Lines:  []purchase.LineCandidate{f.line("100", "20")},
		})
		require.Error(t, err)

		span := endedSpan(t, recorder, "purchase_transaction.create")
		assert.Equal(t, codes.Error, span.Status().Code)
		assert.Contains(t, span.Attributes(),
			attribute.String(telemetry.SpanAttrErrorCode, purchase.CodeInvalidChoice))
	})
}

func TestTransactionService_GetTransactionReportsPaidDrift(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	f := newServiceFixture(t)
	f.service = NewTransactionService(
		f.store.scope(),
		purchase.PostingAccounts{PurchaseControl: f.data.purchaseControl, Vat: f.data.vatControl},
		f.publisher,
		zap.New(core),
	)
	payment := f.createPayment("-1000")

	f.publisher.On("Publish", mock.Anything, eventOfType(purchase.EventTypeTransactionCreated)).Return(nil).Once()
	_, err := f.service.Create(f.ctx, CreateTransactionRequest{
		Type:    purchase.TypeInvoice,
		Period:  "202007",
		Fields:  f.fields("120", "100", "20"),
		Lines:   []purchase.LineCandidate{f.line("100", "20")},
		Matches: []purchase.MatchCandidate{{CounterpartID: payment.Header.ID, Value: dec("-120")}},
	})
	require.NoError(t, err)

	view, err := f.service.GetTransaction(f.ctx, payment.Header.ID)
	require.NoError(t, err)
	assert.True(t, view.Header.Paid.Equal(dec("-120")))
	assert.Zero(t, recorded.FilterMessage("Stored paid disagrees with matches").Len())

	stored := f.store.headers[payment.Header.ID]
	stored.Paid = dec("-500")
	f.store.headers[payment.Header.ID] = stored

	_, err = f.service.GetTransaction(f.ctx, payment.Header.ID)
	require.NoError(t, err)
	entries := recorded.FilterMessage("Stored paid disagrees with matches").All()
	require.Len(t, entries, 1)
	assert.Equal(t, payment.Header.ID.String(), entries[0].ContextMap()["header_id"])
	assert.Equal(t, "-500.00", entries[0].ContextMap()["stored_paid"])
	assert.Equal(t, "-120.00", entries[0].ContextMap()["matched_paid"])
}
