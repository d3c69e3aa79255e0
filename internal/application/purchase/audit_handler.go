package purchase

import (
	"context"
	"fmt"

	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuditHandler writes an audit log entry for every committed purchase
// ledger change.
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(log *zap.Logger) *AuditHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuditHandler{logger: log.Named("purchase_audit")}
}

// EventTypes returns the event types this handler is interested in
func (h *AuditHandler) EventTypes() []string {
	return []string{
		purchase.EventTypeTransactionCreated,
		purchase.EventTypeTransactionEdited,
		purchase.EventTypeTransactionVoided,
	}
}

// Handle logs the event
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	log := logger.WithLogger(ctx, h.logger).With(
		zap.String("event_id", event.EventID().String()),
		zap.String("event_type", event.EventType()),
		zap.Time("occurred_at", event.OccurredAt()),
	)

	switch e := event.(type) {
	case *purchase.TransactionCreatedEvent:
		log.Info("Purchase transaction created",
			zap.String("header_id", e.HeaderID.String()),
			zap.String("type", e.Type.String()),
			zap.String("supplier_id", e.SupplierID.String()),
			zap.String("ref", e.Ref),
			zap.String("period", e.Period),
			zap.String("total", e.Total.StringFixed(2)),
			zap.String("due", e.Due.StringFixed(2)),
			zap.Int("postings", e.Postings),
		)
	case *purchase.TransactionEditedEvent:
		log.Info("Purchase transaction edited",
			zap.String("header_id", e.HeaderID.String()),
			zap.String("type", e.Type.String()),
			zap.String("total", e.Total.StringFixed(2)),
			zap.String("due", e.Due.StringFixed(2)),
			zap.Int("matches_created", e.MatchesCreated),
			zap.Int("matches_updated", e.MatchesUpdated),
			zap.Int("matches_deleted", e.MatchesDeleted),
			zap.Int("counterparts", len(e.Counterparts)),
		)
	case *purchase.TransactionVoidedEvent:
		log.Info("Purchase transaction voided",
			zap.String("header_id", e.HeaderID.String()),
			zap.String("type", e.Type.String()),
			zap.String("ref", e.Ref),
			zap.Int("released_matches", e.ReleasedMatches),
			zap.Int("counterparts", len(e.Counterparts)),
		)
	default:
		h.logger.Error("unexpected event type", zap.String("actual", event.EventType()))
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
	return nil
}

var _ shared.EventHandler = (*AuditHandler)(nil)
