package purchase

import (
	"strings"
	"time"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Header is a purchase ledger transaction: an invoice, credit note, payment,
// refund or the brought-forward equivalent of one of those.
//
// Paid is the net of every match touching the header and Due is always
// Total - Paid.
type Header struct {
	shared.BaseAggregateRoot
	Type       HeaderType      `json:"type"`
	SupplierID uuid.UUID       `json:"supplier_id"`
	CashBookID *uuid.UUID      `json:"cash_book_id,omitempty"`
	Ref        string          `json:"ref"`
	Date       time.Time       `json:"date"`
	DueDate    *time.Time      `json:"due_date,omitempty"`
	Period     string          `json:"period"`
	Goods      decimal.Decimal `json:"goods"`
	Vat        decimal.Decimal `json:"vat"`
	Total      decimal.Decimal `json:"total"`
	Paid       decimal.Decimal `json:"paid"`
	Due        decimal.Decimal `json:"due"`
	Status     Status          `json:"status"`
	VoidedAt   *time.Time      `json:"voided_at,omitempty"`
}

// HeaderFields are the user editable fields of a header, in ledger sign.
type HeaderFields struct {
	SupplierID uuid.UUID
	CashBookID *uuid.UUID
	Ref        string
	Date       time.Time
	DueDate    *time.Time
	Goods      decimal.Decimal
	Vat        decimal.Decimal
	Total      decimal.Decimal
}

// NewHeader creates a completed, unmatched header.
func NewHeader(headerType HeaderType, period string, fields HeaderFields) (*Header, error) {
	if !headerType.IsValid() {
		return nil, NewInvalidChoiceError("type")
	}
	period = strings.TrimSpace(period)
	if period == "" {
		return nil, NewInvalidFieldError("period", "This field is required.")
	}

	h := &Header{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              headerType,
		Period:            period,
		Paid:              decimal.Zero,
		Status:            StatusCompleted,
	}
	if err := h.applyFields(fields); err != nil {
		return nil, err
	}
	return h, nil
}

// Amend applies an edit to the header fields. The type is immutable and a
// voided header cannot be edited at all.
func (h *Header) Amend(headerType HeaderType, fields HeaderFields) error {
	if h.IsVoided() {
		return ErrTransactionVoided
	}
	if headerType != "" && headerType != h.Type {
		return ErrTypeImmutable
	}
	if err := h.applyFields(fields); err != nil {
		return err
	}
	h.Touch()
	return nil
}

func (h *Header) applyFields(f HeaderFields) error {
	if f.SupplierID == uuid.Nil {
		return NewInvalidChoiceError("supplier")
	}
	ref := strings.TrimSpace(f.Ref)
	if ref == "" {
		return NewInvalidFieldError("ref", "This field is required.")
	}
	if len(ref) > maxRefLength {
		return NewInvalidFieldError("ref", "Ensure this value has at most 20 characters.")
	}
	if f.Date.IsZero() {
		return NewInvalidFieldError("date", "This field is required.")
	}

	total := roundMoney(f.Total)
	goods := roundMoney(f.Goods)
	vat := roundMoney(f.Vat)
	if !h.Type.AgreesWith(total) {
		return ErrInvalidSign
	}

	var cashBook *uuid.UUID
	if h.Type.IsCash() {
		if h.Type.PostsToLedger() && (f.CashBookID == nil || *f.CashBookID == uuid.Nil) {
			return NewInvalidChoiceError("cash_book")
		}
		cashBook = f.CashBookID
		goods = decimal.Zero
		vat = decimal.Zero
	}

	h.SupplierID = f.SupplierID
	h.CashBookID = cashBook
	h.Ref = ref
	h.Date = f.Date
	h.DueDate = f.DueDate
	h.Goods = goods
	h.Vat = vat
	h.Total = total
	h.recalculate()
	return nil
}

// IsVoided returns true once the header has been voided
func (h *Header) IsVoided() bool {
	return h.Status == StatusVoided
}

// MatchLimit is the far end of the interval a header's match total must lie
// in. Match values run opposite in sign to the header total.
func (h *Header) MatchLimit() decimal.Decimal {
	return h.Total.Neg()
}

// IsOutstanding reports whether the header is live and not fully matched.
func (h *Header) IsOutstanding() bool {
	return !h.IsVoided() && !h.Due.IsZero()
}

// adjustPaid moves amount into Paid and keeps Due in step.
func (h *Header) adjustPaid(amount decimal.Decimal) {
	h.Paid = h.Paid.Add(amount)
	h.recalculate()
	h.Touch()
}

func (h *Header) recalculate() {
	h.Due = h.Total.Sub(h.Paid)
}

// ComputePaid derives a header's paid figure from every match touching it.
func ComputePaid(headerID uuid.UUID, matches []*Match) decimal.Decimal {
	paid := decimal.Zero
	for _, m := range matches {
		if !m.Touches(headerID) {
			continue
		}
		paid = paid.Sub(m.ValueFor(headerID))
	}
	return paid
}
