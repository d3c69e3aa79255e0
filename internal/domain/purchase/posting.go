package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostingField tags which part of a line a posting was raised for.
type PostingField string

const (
	FieldGoods PostingField = "g"
	FieldVat   PostingField = "v"
	FieldTotal PostingField = "t"
)

// VatTypeInput marks VAT reclaimable on purchases.
const VatTypeInput = "i"

// NominalTransaction is one general ledger posting.
type NominalTransaction struct {
	ID        uuid.UUID       `json:"id"`
	Module    string          `json:"module"`
	HeaderID  uuid.UUID       `json:"header_id"`
	Line      int             `json:"line"`
	NominalID uuid.UUID       `json:"nominal_id"`
	Value     decimal.Decimal `json:"value"`
	Field     PostingField    `json:"field"`
	Type      HeaderType      `json:"type"`
	Ref       string          `json:"ref"`
	Date      time.Time       `json:"date"`
	Period    string          `json:"period"`
}

// CashBookTransaction records money through a cash book.
type CashBookTransaction struct {
	ID         uuid.UUID       `json:"id"`
	Module     string          `json:"module"`
	HeaderID   uuid.UUID       `json:"header_id"`
	Line       int             `json:"line"`
	CashBookID uuid.UUID       `json:"cash_book_id"`
	Value      decimal.Decimal `json:"value"`
	Field      PostingField    `json:"field"`
	Type       HeaderType      `json:"type"`
	Ref        string          `json:"ref"`
	Date       time.Time       `json:"date"`
	Period     string          `json:"period"`
}

// VatTransaction feeds the VAT return for one line.
type VatTransaction struct {
	ID        uuid.UUID       `json:"id"`
	Module    string          `json:"module"`
	HeaderID  uuid.UUID       `json:"header_id"`
	Line      int             `json:"line"`
	VatCodeID uuid.UUID       `json:"vat_code_id"`
	VatRate   decimal.Decimal `json:"vat_rate"`
	VatType   string          `json:"vat_type"`
	Goods     decimal.Decimal `json:"goods"`
	Vat       decimal.Decimal `json:"vat"`
	Field     PostingField    `json:"field"`
	Type      HeaderType      `json:"type"`
	Ref       string          `json:"ref"`
	Date      time.Time       `json:"date"`
	Period    string          `json:"period"`
}

// PostingBatch is everything a header posts. It is always replaced as a
// whole, never patched.
type PostingBatch struct {
	Nominal  []NominalTransaction  `json:"nominal"`
	CashBook []CashBookTransaction `json:"cash_book"`
	Vat      []VatTransaction      `json:"vat"`
}

// Len returns the number of rows in the batch
func (b PostingBatch) Len() int {
	return len(b.Nominal) + len(b.CashBook) + len(b.Vat)
}

// IsEmpty returns true when the batch posts nothing
func (b PostingBatch) IsEmpty() bool {
	return b.Len() == 0
}

// NominalBalance sums the nominal postings, which is zero for a balanced batch.
func (b PostingBatch) NominalBalance() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range b.Nominal {
		sum = sum.Add(t.Value)
	}
	return sum
}

// Link points every line at the postings raised for it and clears
// references to postings that no longer exist.
func (b PostingBatch) Link(lines []*Line) {
	byLine := make(map[int]*Line, len(lines))
	for _, l := range lines {
		l.clearPostingRefs()
		byLine[l.LineNo] = l
	}
	for i := range b.Nominal {
		t := &b.Nominal[i]
		l, ok := byLine[t.Line]
		if !ok {
			continue
		}
		id := t.ID
		switch t.Field {
		case FieldGoods:
			l.GoodsNominalTransactionID = &id
		case FieldVat:
			l.VatNominalTransactionID = &id
		case FieldTotal:
			l.TotalNominalTransactionID = &id
		}
	}
	for i := range b.Vat {
		if l, ok := byLine[b.Vat[i].Line]; ok {
			id := b.Vat[i].ID
			l.VatTransactionID = &id
		}
	}
}
