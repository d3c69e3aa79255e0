package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one analysed entry of an invoice or credit note.
type Line struct {
	ID          uuid.UUID       `json:"id"`
	HeaderID    uuid.UUID       `json:"header_id"`
	LineNo      int             `json:"line_no"`
	Description string          `json:"description"`
	Goods       decimal.Decimal `json:"goods"`
	Vat         decimal.Decimal `json:"vat"`
	NominalID   *uuid.UUID      `json:"nominal_id,omitempty"`
	VatCodeID   *uuid.UUID      `json:"vat_code_id,omitempty"`

	GoodsNominalTransactionID *uuid.UUID `json:"goods_nominal_transaction_id,omitempty"`
	VatNominalTransactionID   *uuid.UUID `json:"vat_nominal_transaction_id,omitempty"`
	TotalNominalTransactionID *uuid.UUID `json:"total_nominal_transaction_id,omitempty"`
	VatTransactionID          *uuid.UUID `json:"vat_transaction_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Total is goods plus vat.
func (l *Line) Total() decimal.Decimal {
	return l.Goods.Add(l.Vat)
}

// IsZero reports whether the line carries no value at all.
func (l *Line) IsZero() bool {
	return l.Goods.IsZero() && l.Vat.IsZero()
}

func (l *Line) clearPostingRefs() {
	l.GoodsNominalTransactionID = nil
	l.VatNominalTransactionID = nil
	l.TotalNominalTransactionID = nil
	l.VatTransactionID = nil
}

// SumLines returns the goods and vat totals of lines.
func SumLines(lines []*Line) (goods, vat decimal.Decimal) {
	goods, vat = decimal.Zero, decimal.Zero
	for _, l := range lines {
		goods = goods.Add(l.Goods)
		vat = vat.Add(l.Vat)
	}
	return goods, vat
}
