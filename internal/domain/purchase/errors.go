package purchase

import (
	"fmt"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Error codes raised by the purchase ledger.
const (
	CodeInvalidChoice        = "INVALID_CHOICE"
	CodeInvalidField         = "INVALID_FIELD"
	CodeInvalidSign          = "INVALID_SIGN"
	CodeLineZero             = "LINE_ZERO"
	CodeLineTotalMismatch    = "LINE_TOTAL_MISMATCH"
	CodeLinesNotAllowed      = "LINES_NOT_ALLOWED"
	CodeMatchValueOutOfRange = "MATCH_VALUE_OUT_OF_RANGE"
	CodeMatchTotalOutOfRange = "MATCH_TOTAL_OUT_OF_RANGE"
	CodeImmutableField       = "IMMUTABLE_FIELD"
	CodeTransactionVoided    = "TRANSACTION_VOIDED"
)

const (
	moneyPlaces          = 2
	maxRefLength         = 20
	maxDescriptionLength = 100
)

var (
	// ErrLineZero rejects a line with neither goods nor vat.
	ErrLineZero = shared.NewDomainError(CodeLineZero, "Goods and Vat cannot both be zero.")

	// ErrLineTotalMismatch rejects lines that do not add up to the header.
	ErrLineTotalMismatch = shared.NewDomainError(CodeLineTotalMismatch,
		"The total of the lines does not equal the total you entered.")

	// ErrLinesNotAllowed rejects lines on a payment or refund.
	ErrLinesNotAllowed = shared.NewDomainError(CodeLinesNotAllowed,
		"Lines are not allowed on this type of transaction")

	// ErrTypeImmutable rejects an edit that changes the header type.
	ErrTypeImmutable = shared.NewDomainError(CodeImmutableField, "Transaction type cannot be changed")

	// ErrTransactionVoided rejects any edit of a voided header.
	ErrTransactionVoided = shared.NewDomainError(CodeTransactionVoided, "Voided transactions cannot be edited")

	// ErrInvalidSign rejects a total running against the type's sign.
	ErrInvalidSign = shared.NewDomainError(CodeInvalidSign, "Total must carry the sign of the transaction type")
)

// NewInvalidChoiceError reports a reference that does not resolve.
func NewInvalidChoiceError(field string) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidChoice,
		fmt.Sprintf("%s: Select a valid choice. That choice is not a valid choice.", field))
}

// NewInvalidFieldError reports a malformed header field.
func NewInvalidFieldError(field, reason string) *shared.DomainError {
	return shared.NewDomainError(CodeInvalidField, fmt.Sprintf("%s: %s", field, reason))
}

// NewMatchValueOutOfRangeError reports a match value outside [0, counterpart total].
func NewMatchValueOutOfRangeError(limit decimal.Decimal) *shared.DomainError {
	return shared.NewDomainError(CodeMatchValueOutOfRange,
		fmt.Sprintf("Value must be between 0 and %s", limit.StringFixed(moneyPlaces)))
}

// NewMatchTotalOutOfRangeError reports a header's match total outside [0, -total].
func NewMatchTotalOutOfRangeError(limit decimal.Decimal) *shared.DomainError {
	return shared.NewDomainError(CodeMatchTotalOutOfRange,
		fmt.Sprintf("Please ensure the total of the transactions you are matching is between 0 and %s",
			limit.StringFixed(moneyPlaces)))
}

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyPlaces)
}

// between reports whether v lies in the closed interval spanned by a and b,
// whichever order they come in.
func between(v, a, b decimal.Decimal) bool {
	lo, hi := a, b
	if lo.GreaterThan(hi) {
		lo, hi = hi, lo
	}
	return v.GreaterThanOrEqual(lo) && v.LessThanOrEqual(hi)
}
