package purchase

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MatchCandidate is one submitted allocation, valued from the point of view
// of the header being edited. A nil ID means a new record.
type MatchCandidate struct {
	ID            *uuid.UUID
	CounterpartID uuid.UUID
	Value         decimal.Decimal
}

// MatchPlan is the set of changes a validated batch makes.
type MatchPlan struct {
	Create []*Match
	Update []*Match
	Delete []*Match
	// Touched are the counterpart headers whose balances moved.
	Touched []*Header
}

// IsEmpty reports whether the plan changes nothing
func (p *MatchPlan) IsEmpty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

type matchChange struct {
	record      *Match
	counterpart *Header
	value       decimal.Decimal
}

// MatchingEngine validates and applies allocation batches.
type MatchingEngine struct{}

// NewMatchingEngine creates a MatchingEngine
func NewMatchingEngine() *MatchingEngine {
	return &MatchingEngine{}
}

// Plan validates candidates for h and, only if every record passes both the
// per-record and per-header bounds, applies them to h and the counterparts.
//
// existing must hold every record touching h and counterparts every header
// referenced by existing or candidates, locked by the caller. Records not
// named by a candidate are left alone but still count towards the header
// bound. On error nothing has been mutated.
func (e *MatchingEngine) Plan(h *Header, existing []*Match, counterparts map[uuid.UUID]*Header, candidates []MatchCandidate) (*MatchPlan, error) {
	byID := make(map[uuid.UUID]*Match, len(existing))
	for _, m := range existing {
		if m.Touches(h.ID) {
			byID[m.ID] = m
		}
	}

	seen := make(map[uuid.UUID]bool, len(candidates))
	changes := make([]matchChange, 0, len(candidates))
	for _, c := range candidates {
		value := roundMoney(c.Value)

		var record *Match
		if c.ID != nil {
			m, ok := byID[*c.ID]
			if !ok || seen[*c.ID] || m.Counterpart(h.ID) != c.CounterpartID {
				return nil, NewInvalidChoiceError("matched_to")
			}
			seen[*c.ID] = true
			record = m
		} else if value.IsZero() {
			continue
		}

		cp, ok := counterparts[c.CounterpartID]
		if !ok || cp == nil {
			return nil, NewInvalidChoiceError("matched_to")
		}
		if record == nil && !canMatch(h, cp) {
			return nil, NewInvalidChoiceError("matched_to")
		}

		if !between(value, decimal.Zero, cp.Total) {
			return nil, NewMatchValueOutOfRangeError(cp.Total)
		}
		changes = append(changes, matchChange{record: record, counterpart: cp, value: value})
	}

	total := decimal.Zero
	for _, ch := range changes {
		total = total.Add(ch.value)
	}
	for id, m := range byID {
		if !seen[id] {
			total = total.Add(m.ValueFor(h.ID))
		}
	}
	if !between(total, decimal.Zero, h.MatchLimit()) {
		return nil, NewMatchTotalOutOfRangeError(h.MatchLimit())
	}

	return e.apply(h, changes), nil
}

func (e *MatchingEngine) apply(h *Header, changes []matchChange) *MatchPlan {
	plan := &MatchPlan{}
	touched := make(map[uuid.UUID]*Header)
	for _, ch := range changes {
		old := decimal.Zero
		if ch.record != nil {
			old = ch.record.ValueFor(h.ID)
		}
		delta := ch.value.Sub(old)
		if delta.IsZero() {
			continue
		}

		h.adjustPaid(delta.Neg())
		ch.counterpart.adjustPaid(delta)
		touched[ch.counterpart.ID] = ch.counterpart

		switch {
		case ch.record == nil:
			plan.Create = append(plan.Create, NewMatch(h.ID, ch.counterpart.ID, ch.value, h.Period))
		case ch.value.IsZero():
			plan.Delete = append(plan.Delete, ch.record)
		default:
			updated := *ch.record
			updated.setValueFor(h.ID, ch.value)
			plan.Update = append(plan.Update, &updated)
		}
	}

	for _, cp := range touched {
		plan.Touched = append(plan.Touched, cp)
	}
	sortHeaders(plan.Touched)
	return plan
}

// canMatch reports whether a new record may link h and cp.
func canMatch(h, cp *Header) bool {
	return cp.ID != h.ID && !cp.IsVoided() && cp.SupplierID == h.SupplierID
}

// CounterpartIDs returns every header other than headerID that existing
// records or candidates refer to, in ascending order. This is the order
// rows must be locked in.
func CounterpartIDs(headerID uuid.UUID, existing []*Match, candidates []MatchCandidate) []uuid.UUID {
	set := make(map[uuid.UUID]struct{})
	for _, m := range existing {
		if m.Touches(headerID) {
			set[m.Counterpart(headerID)] = struct{}{}
		}
	}
	for _, c := range candidates {
		if c.CounterpartID != uuid.Nil && c.CounterpartID != headerID {
			set[c.CounterpartID] = struct{}{}
		}
	}
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	SortIDs(ids)
	return ids
}

// SortIDs orders ids ascending by their canonical string form.
func SortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
