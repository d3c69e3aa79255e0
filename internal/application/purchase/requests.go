package purchase

import (
	"github.com/erp/ledger/internal/domain/purchase"
	"github.com/google/uuid"
)

// CreateTransactionRequest carries a new header with its lines and matches.
// Amounts are in ledger sign.
type CreateTransactionRequest struct {
	Type    purchase.HeaderType
	Period  string
	Fields  purchase.HeaderFields
	Lines   []purchase.LineCandidate
	Matches []purchase.MatchCandidate
}

// EditTransactionRequest carries the full replacement state of a header.
// Type must match the stored type when set.
type EditTransactionRequest struct {
	ID      uuid.UUID
	Type    purchase.HeaderType
	Fields  purchase.HeaderFields
	Lines   []purchase.LineCandidate
	Matches []purchase.MatchCandidate
}

// TransactionView is a header with everything hanging off it.
type TransactionView struct {
	Header   *purchase.Header       `json:"header"`
	Lines    []*purchase.Line       `json:"lines"`
	Matches  []*purchase.Match      `json:"matches"`
	Postings *purchase.PostingBatch `json:"postings"`
}

// VoidResult reports whether a void took effect. Voiding an already voided
// header is not an error; Success is false instead.
type VoidResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Header  *purchase.Header `json:"header,omitempty"`
}
