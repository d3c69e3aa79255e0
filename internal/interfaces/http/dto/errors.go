package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidChoice is used when a reference does not resolve
	ErrCodeInvalidChoice = "ERR_INVALID_CHOICE"
	// ErrCodeInvalidField is used when a single field is malformed
	ErrCodeInvalidField = "ERR_INVALID_FIELD"
	// ErrCodeInvalidSign is used when a total carries the wrong sign for its type
	ErrCodeInvalidSign = "ERR_INVALID_SIGN"
	// ErrCodeImmutableField is used when an edit changes a fixed field
	ErrCodeImmutableField = "ERR_IMMUTABLE_FIELD"
)

// Line error codes
const (
	// ErrCodeLineZero is used when a line has neither goods nor vat
	ErrCodeLineZero = "ERR_LINE_ZERO"
	// ErrCodeLineTotalMismatch is used when lines do not add up to the header
	ErrCodeLineTotalMismatch = "ERR_LINE_TOTAL_MISMATCH"
	// ErrCodeLinesNotAllowed is used when lines are sent for a payment or refund
	ErrCodeLinesNotAllowed = "ERR_LINES_NOT_ALLOWED"
)

// Matching error codes
const (
	// ErrCodeMatchValueOutOfRange is used when one match exceeds its counterpart
	ErrCodeMatchValueOutOfRange = "ERR_MATCH_VALUE_OUT_OF_RANGE"
	// ErrCodeMatchTotalOutOfRange is used when the matches exceed the header
	ErrCodeMatchTotalOutOfRange = "ERR_MATCH_TOTAL_OUT_OF_RANGE"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
	// ErrCodeDuplicateRequest is used when an idempotency key is replayed
	ErrCodeDuplicateRequest = "ERR_DUPLICATE_REQUEST"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeTransactionVoided is used when a voided transaction is edited
	ErrCodeTransactionVoided = "ERR_TRANSACTION_VOIDED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Access error codes
const (
	// ErrCodeForbidden is used when the client may not reach the resource
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:     http.StatusBadRequest,
	ErrCodeInvalidChoice:  http.StatusBadRequest,
	ErrCodeInvalidField:   http.StatusBadRequest,
	ErrCodeImmutableField: http.StatusBadRequest,

	// Ledger rule violations -> 422 Unprocessable Entity
	ErrCodeInvalidSign:          http.StatusUnprocessableEntity,
	ErrCodeLineZero:             http.StatusUnprocessableEntity,
	ErrCodeLineTotalMismatch:    http.StatusUnprocessableEntity,
	ErrCodeLinesNotAllowed:      http.StatusUnprocessableEntity,
	ErrCodeMatchValueOutOfRange: http.StatusUnprocessableEntity,
	ErrCodeMatchTotalOutOfRange: http.StatusUnprocessableEntity,
	ErrCodeInvalidState:         http.StatusUnprocessableEntity,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeDuplicateRequest:    http.StatusConflict,
	ErrCodeTransactionVoided:   http.StatusConflict,

	// Input errors
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Access errors -> 403 Forbidden
	ErrCodeForbidden: http.StatusForbidden,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":                ErrCodeNotFound,
	"ALREADY_EXISTS":           ErrCodeAlreadyExists,
	"INVALID_INPUT":            ErrCodeInvalidInput,
	"INVALID_STATE":            ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":     ErrCodeConcurrencyConflict,
	"INVALID_CHOICE":           ErrCodeInvalidChoice,
	"INVALID_FIELD":            ErrCodeInvalidField,
	"INVALID_SIGN":             ErrCodeInvalidSign,
	"LINE_ZERO":                ErrCodeLineZero,
	"LINE_TOTAL_MISMATCH":      ErrCodeLineTotalMismatch,
	"LINES_NOT_ALLOWED":        ErrCodeLinesNotAllowed,
	"MATCH_VALUE_OUT_OF_RANGE": ErrCodeMatchValueOutOfRange,
	"MATCH_TOTAL_OUT_OF_RANGE": ErrCodeMatchTotalOutOfRange,
	"IMMUTABLE_FIELD":          ErrCodeImmutableField,
	"TRANSACTION_VOIDED":       ErrCodeTransactionVoided,
}

// NormalizeErrorCode converts a domain error code to the API format
// If the code is already in the API format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
