package purchase

import (
	"fmt"
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoidOutcome describes what a void did.
type VoidOutcome struct {
	// Voided is false when the header was already voided and nothing changed.
	Voided bool
	// Released are the match records to delete.
	Released []*Match
	// Touched are the counterparts whose balances were restored.
	Touched []*Header
}

// VoidEngine undoes a header's postings and matches.
type VoidEngine struct{}

// NewVoidEngine creates a VoidEngine
func NewVoidEngine() *VoidEngine {
	return &VoidEngine{}
}

// Void reverses every record in matches on its counterpart, zeroes h's paid
// figure and marks it voided. Lines are kept but lose their posting
// references; deleting the postings themselves is up to the caller.
// Counterparts are never voided.
func (e *VoidEngine) Void(h *Header, lines []*Line, matches []*Match, counterparts map[uuid.UUID]*Header, at time.Time) (*VoidOutcome, error) {
	if h.IsVoided() {
		return &VoidOutcome{Voided: false}, nil
	}

	released := make([]*Match, 0, len(matches))
	for _, m := range matches {
		if !m.Touches(h.ID) {
			continue
		}
		cp, ok := counterparts[m.Counterpart(h.ID)]
		if !ok || cp == nil {
			return nil, shared.NewDomainError("COUNTERPART_MISSING",
				fmt.Sprintf("matched transaction %s is not loaded", m.Counterpart(h.ID)))
		}
		released = append(released, m)
	}

	touched := make(map[uuid.UUID]*Header)
	for _, m := range released {
		cp := counterparts[m.Counterpart(h.ID)]
		// the counterpart gained ValueFor(h) when the record was applied
		cp.adjustPaid(m.ValueFor(h.ID).Neg())
		touched[cp.ID] = cp
	}

	h.Paid = decimal.Zero
	h.recalculate()
	h.Status = StatusVoided
	voidedAt := at
	h.VoidedAt = &voidedAt
	h.Touch()
	for _, l := range lines {
		l.clearPostingRefs()
	}

	outcome := &VoidOutcome{Voided: true, Released: released}
	for _, cp := range touched {
		outcome.Touched = append(outcome.Touched, cp)
	}
	sortHeaders(outcome.Touched)
	return outcome, nil
}

func sortHeaders(headers []*Header) {
	ids := make([]uuid.UUID, len(headers))
	byID := make(map[uuid.UUID]*Header, len(headers))
	for i, h := range headers {
		ids[i] = h.ID
		byID[h.ID] = h
	}
	SortIDs(ids)
	for i, id := range ids {
		headers[i] = byID[id]
	}
}
