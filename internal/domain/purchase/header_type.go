package purchase

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ModulePurchases tags every posting raised by the purchase ledger.
const ModulePurchases = "PL"

// HeaderType identifies the kind of purchase ledger transaction.
// The codes match the stored values, so they must never be renamed.
type HeaderType string

const (
	TypeBroughtForwardInvoice    HeaderType = "pbi"
	TypeBroughtForwardCreditNote HeaderType = "pbc"
	TypeBroughtForwardPayment    HeaderType = "pbp"
	TypeBroughtForwardRefund     HeaderType = "pbr"
	TypeInvoice                  HeaderType = "pi"
	TypeCreditNote               HeaderType = "pc"
	TypePayment                  HeaderType = "pp"
	TypeRefund                   HeaderType = "pr"
)

// AllHeaderTypes lists every header type in display order.
var AllHeaderTypes = []HeaderType{
	TypeBroughtForwardInvoice,
	TypeBroughtForwardCreditNote,
	TypeBroughtForwardPayment,
	TypeBroughtForwardRefund,
	TypeInvoice,
	TypeCreditNote,
	TypePayment,
	TypeRefund,
}

// ParseHeaderType converts a raw code into a HeaderType.
func ParseHeaderType(code string) (HeaderType, error) {
	t := HeaderType(code)
	if !t.IsValid() {
		return "", NewInvalidChoiceError("type")
	}
	return t, nil
}

// IsValid checks if the type is one of the known header types
func (t HeaderType) IsValid() bool {
	switch t {
	case TypeBroughtForwardInvoice, TypeBroughtForwardCreditNote,
		TypeBroughtForwardPayment, TypeBroughtForwardRefund,
		TypeInvoice, TypeCreditNote, TypePayment, TypeRefund:
		return true
	}
	return false
}

// String returns the stored code
func (t HeaderType) String() string {
	return string(t)
}

// Label returns the human readable name of the type
func (t HeaderType) Label() string {
	switch t {
	case TypeBroughtForwardInvoice:
		return "Brought Forward Invoice"
	case TypeBroughtForwardCreditNote:
		return "Brought Forward Credit Note"
	case TypeBroughtForwardPayment:
		return "Brought Forward Payment"
	case TypeBroughtForwardRefund:
		return "Brought Forward Refund"
	case TypeInvoice:
		return "Invoice"
	case TypeCreditNote:
		return "Credit Note"
	case TypePayment:
		return "Payment"
	case TypeRefund:
		return "Refund"
	}
	return fmt.Sprintf("Unknown(%s)", string(t))
}

// Sign is +1 for types that increase what is owed to the supplier
// (invoices, refunds) and -1 for those that reduce it (credit notes, payments).
func (t HeaderType) Sign() int {
	switch t {
	case TypeBroughtForwardCreditNote, TypeBroughtForwardPayment, TypeCreditNote, TypePayment:
		return -1
	}
	return 1
}

// IsBroughtForward reports whether the type carries a balance in from a
// prior system. Brought-forward transactions never post to the ledger.
func (t HeaderType) IsBroughtForward() bool {
	switch t {
	case TypeBroughtForwardInvoice, TypeBroughtForwardCreditNote,
		TypeBroughtForwardPayment, TypeBroughtForwardRefund:
		return true
	}
	return false
}

// PostsToLedger reports whether the type generates nominal postings.
func (t HeaderType) PostsToLedger() bool {
	return t.IsValid() && !t.IsBroughtForward()
}

// HasLines reports whether the type is analysed by line items.
func (t HeaderType) HasLines() bool {
	switch t {
	case TypeBroughtForwardInvoice, TypeBroughtForwardCreditNote, TypeInvoice, TypeCreditNote:
		return true
	}
	return false
}

// IsCash reports whether the type moves money through a cash book.
func (t HeaderType) IsCash() bool {
	switch t {
	case TypeBroughtForwardPayment, TypeBroughtForwardRefund, TypePayment, TypeRefund:
		return true
	}
	return false
}

// Normalise turns an amount entered as a positive figure into ledger sign.
// Users enter credit notes and payments as positives.
func (t HeaderType) Normalise(amount decimal.Decimal) decimal.Decimal {
	if t.Sign() < 0 {
		return amount.Neg()
	}
	return amount
}

// AgreesWith reports whether amount is zero or carries the type's sign.
func (t HeaderType) AgreesWith(amount decimal.Decimal) bool {
	return amount.IsZero() || amount.Sign() == t.Sign()
}

// Status is the lifecycle state of a header
type Status string

const (
	StatusCompleted Status = "completed"
	StatusVoided    Status = "voided"
)

// IsValid checks if the status is known
func (s Status) IsValid() bool {
	return s == StatusCompleted || s == StatusVoided
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if no further edits are accepted
func (s Status) IsTerminal() bool {
	return s == StatusVoided
}
