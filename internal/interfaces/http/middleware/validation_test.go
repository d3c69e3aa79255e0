package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedLine struct {
	NominalID string `json:"nominal_id" binding:"required,uuid"`
}

type validatedRequest struct {
	Type   string          `json:"type" binding:"required"`
	Period string          `json:"period" binding:"required,period"`
	Ref    string          `json:"ref" binding:"max=20"`
	Date   string          `json:"date" binding:"required,datetime=2006-01-02"`
	Lines  []validatedLine `json:"lines" binding:"dive"`
}

func newValidationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.Use(RequestID())
	router.POST("/test", func(c *gin.Context) {
		var req validatedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(nil))
	})
	return router
}

func postJSON(router *gin.Engine, body string) (*httptest.ResponseRecorder, dto.Response) {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderRequestID, "req-validate")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestHandleValidationError(t *testing.T) {
	router := newValidationRouter()

	t.Run("valid body passes", func(t *testing.T) {
		w, _ := postJSON(router, `{"type":"pi","period":"202007","date":"2020-07-01","lines":[{"nominal_id":"8c5a3f2e-4b1d-4c59-9f43-0d8e2f6b7a11"}]}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("field details use json paths", func(t *testing.T) {
		w, resp := postJSON(router, `{"period":"202013","ref":"`+strings.Repeat("r", 21)+`","date":"01/07/2020","lines":[{"nominal_id":"nope"}]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-validate", resp.Error.RequestID)

		byField := make(map[string]string)
		for _, d := range resp.Error.Details {
			byField[d.Field] = d.Message
		}
		assert.Equal(t, "This field is required.", byField["type"])
		assert.Equal(t, "Must be a period in the form YYYYMM.", byField["period"])
		assert.Equal(t, "Ensure this field has no more than 20 characters.", byField["ref"])
		assert.Equal(t, "Must be a date in the form 2006-01-02.", byField["date"])
		assert.Equal(t, "Must be a valid UUID.", byField["lines[0].nominal_id"])
	})

	t.Run("malformed json", func(t *testing.T) {
		w, resp := postJSON(router, `{"type":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})
}

func TestPeriodPattern(t *testing.T) {
	tests := []struct {
		period string
		valid  bool
	}{
		{"202007", true},
		{"202012", true},
		{"202000", false},
		{"202013", false},
		{"20207", false},
		{"2020-07", false},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			assert.Equal(t, tt.valid, periodPattern.MatchString(tt.period))
		})
	}
}
