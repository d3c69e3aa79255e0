package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedAuditHandler() (*AuditHandler, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.InfoLevel)
	return NewAuditHandler(zap.New(core)), logs
}

func TestAuditHandler_EventTypes(t *testing.T) {
	h := NewAuditHandler(nil)

	assert.ElementsMatch(t, []string{
		purchase.EventTypeTransactionCreated,
		purchase.EventTypeTransactionEdited,
		purchase.EventTypeTransactionVoided,
	}, h.EventTypes())
}

func TestAuditHandler_Handle(t *testing.T) {
	header, err := purchase.NewHeader(purchase.TypeInvoice, "202007", purchase.HeaderFields{
		SupplierID: uuid.New(),
		Ref:        "INV9",
		Date:       time.Date(2020, 7, 25, 0, 0, 0, 0, time.UTC),
		Goods:      dec("100"),
		Vat:        dec("20"),
		Total:      dec("120"),
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		event   shared.DomainEvent
		message string
	}{
		{"created", purchase.NewTransactionCreatedEvent(header, 3), "Purchase transaction created"},
		{"edited", purchase.NewTransactionEditedEvent(header, &purchase.MatchPlan{}), "Purchase transaction edited"},
		{"voided", purchase.NewTransactionVoidedEvent(header, &purchase.VoidOutcome{Voided: true}), "Purchase transaction voided"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, logs := newObservedAuditHandler()

			require.NoError(t, h.Handle(context.Background(), tt.event))

			entries := logs.FilterMessage(tt.message).All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, header.ID.String(), fields["header_id"])
			assert.Equal(t, tt.event.EventType(), fields["event_type"])
		})
	}
}

func TestAuditHandler_Handle_WrongEventType(t *testing.T) {
	h, logs := newObservedAuditHandler()
	base := shared.NewBaseDomainEvent("SomethingElse", "Other", uuid.New())

	err := h.Handle(context.Background(), &base)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected event type")
	assert.Equal(t, 1, logs.FilterMessage("unexpected event type").Len())
}
