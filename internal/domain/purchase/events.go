package purchase

import (
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AggregateTypeHeader names the header aggregate on events
const AggregateTypeHeader = "PurchaseHeader"

// Event type names
const (
	EventTypeTransactionCreated = "PurchaseTransactionCreated"
	EventTypeTransactionEdited  = "PurchaseTransactionEdited"
	EventTypeTransactionVoided  = "PurchaseTransactionVoided"
)

// TransactionCreatedEvent is raised when a header is first committed
type TransactionCreatedEvent struct {
	shared.BaseDomainEvent
	HeaderID   uuid.UUID       `json:"header_id"`
	Type       HeaderType      `json:"type"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	Ref        string          `json:"ref"`
	Period     string          `json:"period"`
	Total      decimal.Decimal `json:"total"`
	Due        decimal.Decimal `json:"due"`
	Postings   int             `json:"postings"`
}

// NewTransactionCreatedEvent creates a TransactionCreatedEvent
func NewTransactionCreatedEvent(h *Header, postings int) *TransactionCreatedEvent {
	return &TransactionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionCreated, AggregateTypeHeader, h.ID),
		HeaderID:        h.ID,
		Type:            h.Type,
		SupplierID:      h.SupplierID,
		Ref:             h.Ref,
		Period:          h.Period,
		Total:           h.Total,
		Due:             h.Due,
		Postings:        postings,
	}
}

// TransactionEditedEvent is raised when an edit is committed
type TransactionEditedEvent struct {
	shared.BaseDomainEvent
	HeaderID       uuid.UUID       `json:"header_id"`
	Type           HeaderType      `json:"type"`
	Total          decimal.Decimal `json:"total"`
	Due            decimal.Decimal `json:"due"`
	MatchesCreated int             `json:"matches_created"`
	MatchesUpdated int             `json:"matches_updated"`
	MatchesDeleted int             `json:"matches_deleted"`
	Counterparts   []uuid.UUID     `json:"counterparts,omitempty"`
}

// NewTransactionEditedEvent creates a TransactionEditedEvent
func NewTransactionEditedEvent(h *Header, plan *MatchPlan) *TransactionEditedEvent {
	e := &TransactionEditedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionEdited, AggregateTypeHeader, h.ID),
		HeaderID:        h.ID,
		Type:            h.Type,
		Total:           h.Total,
		Due:             h.Due,
	}
	if plan != nil {
		e.MatchesCreated = len(plan.Create)
		e.MatchesUpdated = len(plan.Update)
		e.MatchesDeleted = len(plan.Delete)
		for _, cp := range plan.Touched {
			e.Counterparts = append(e.Counterparts, cp.ID)
		}
	}
	return e
}

// TransactionVoidedEvent is raised when a header is voided
type TransactionVoidedEvent struct {
	shared.BaseDomainEvent
	HeaderID        uuid.UUID   `json:"header_id"`
	Type            HeaderType  `json:"type"`
	Ref             string      `json:"ref"`
	ReleasedMatches int         `json:"released_matches"`
	Counterparts    []uuid.UUID `json:"counterparts,omitempty"`
}

// NewTransactionVoidedEvent creates a TransactionVoidedEvent
func NewTransactionVoidedEvent(h *Header, outcome *VoidOutcome) *TransactionVoidedEvent {
	e := &TransactionVoidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTransactionVoided, AggregateTypeHeader, h.ID),
		HeaderID:        h.ID,
		Type:            h.Type,
		Ref:             h.Ref,
		ReleasedMatches: len(outcome.Released),
	}
	for _, cp := range outcome.Touched {
		e.Counterparts = append(e.Counterparts, cp.ID)
	}
	return e
}
