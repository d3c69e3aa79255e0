package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// periodPattern is YYYYMM.
var periodPattern = regexp.MustCompile(`^\d{4}(0[1-9]|1[0-2])$`)

var setupOnce sync.Once

// SetupValidator configures gin's validator: JSON names in errors and the
// "period" tag. Safe to call more than once.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("uri"), ",", 2)[0]
			}
			return name
		})
		_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
			return periodPattern.MatchString(fl.Field().String())
		})
	})
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   fieldPath(e),
				Message: getValidationMessage(e),
			})
		}
		return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
	}

	// Malformed JSON or a value of the wrong type.
	return dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, "Malformed request body", requestID)
}

// HandleValidationError writes a 400 for a failed bind.
func HandleValidationError(c *gin.Context, err error) {
	resp := FormatValidationErrors(err, GetRequestID(c))
	SetErrorCode(c, resp.Error.Code)
	c.JSON(http.StatusBadRequest, resp)
}

// fieldPath drops the root struct name: "lines[0].goods" rather than
// "CreateTransactionRequest.lines[0].goods".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if e.Kind() == reflect.String {
			return "Ensure this field has no more than " + e.Param() + " characters."
		}
		return "Must be at most " + e.Param()
	case "uuid":
		return "Must be a valid UUID."
	case "oneof":
		return "Must be one of: " + e.Param()
	case "period":
		return "Must be a period in the form YYYYMM."
	case "datetime":
		return "Must be a date in the form " + e.Param() + "."
	case "dive":
		return "Invalid entry"
	default:
		return "Invalid value"
	}
}
