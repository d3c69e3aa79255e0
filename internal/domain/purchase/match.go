package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Match allocates Value between two headers. MatchedBy is the header whose
// allocation list created the record. Applying it lowers MatchedBy.Paid by
// Value and raises MatchedTo.Paid by Value.
type Match struct {
	ID        uuid.UUID       `json:"id"`
	MatchedBy uuid.UUID       `json:"matched_by"`
	MatchedTo uuid.UUID       `json:"matched_to"`
	Value     decimal.Decimal `json:"value"`
	Period    string          `json:"period"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewMatch creates a match record raised by matchedBy.
func NewMatch(matchedBy, matchedTo uuid.UUID, value decimal.Decimal, period string) *Match {
	now := time.Now()
	return &Match{
		ID:        uuid.New(),
		MatchedBy: matchedBy,
		MatchedTo: matchedTo,
		Value:     value,
		Period:    period,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touches reports whether headerID is either side of the record.
func (m *Match) Touches(headerID uuid.UUID) bool {
	return m.MatchedBy == headerID || m.MatchedTo == headerID
}

// Counterpart returns the side of the record that is not headerID.
func (m *Match) Counterpart(headerID uuid.UUID) uuid.UUID {
	if m.MatchedBy == headerID {
		return m.MatchedTo
	}
	return m.MatchedBy
}

// ValueFor returns the value as seen from headerID, i.e. as if headerID had
// raised the record.
func (m *Match) ValueFor(headerID uuid.UUID) decimal.Decimal {
	if m.MatchedBy == headerID {
		return m.Value
	}
	return m.Value.Neg()
}

// setValueFor stores a value given from headerID's point of view.
func (m *Match) setValueFor(headerID uuid.UUID, value decimal.Decimal) {
	if m.MatchedBy == headerID {
		m.Value = value
	} else {
		m.Value = value.Neg()
	}
	m.UpdatedAt = time.Now()
}
