package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTracedRouter(t *testing.T, status int) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
	})

	router := gin.New()
	router.Use(RequestID())
	router.Use(TracingWithConfig(TracingConfig{
		ServiceName:    "test-service",
		Enabled:        true,
		TracerProvider: tp,
	}))
	router.Use(SpanErrorMarker())
	router.PUT("/transactions/:id", func(c *gin.Context) {
		if status >= http.StatusBadRequest {
			SetErrorCode(c, "ERR_MATCH_TOTAL_OUT_OF_RANGE")
		}
		c.JSON(status, gin.H{})
	})
	return router, sr
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false}))
	router.Use(SpanErrorMarker())
	router.GET("/test", func(c *gin.Context) {
		assert.False(t, trace.SpanFromContext(c.Request.Context()).IsRecording())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSpanErrorMarker(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		wantCode    codes.Code
		wantDesc    string
		wantErrCode bool
	}{
		{"success", http.StatusOK, codes.Unset, "", false},
		{"not found", http.StatusNotFound, codes.Error, "Not Found", true},
		{"conflict", http.StatusConflict, codes.Error, "Conflict", true},
		{"rule violation", http.StatusUnprocessableEntity, codes.Error, "Unprocessable Entity", true},
		{"bad request", http.StatusBadRequest, codes.Error, "Client Error", true},
		// otelgin sets its own error status for 5xx after the handler chain returns
		{"server error", http.StatusInternalServerError, codes.Error, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, sr := newTracedRouter(t, tt.status)

			req := httptest.NewRequest(http.MethodPut, "/transactions/abc", nil)
			req.Header.Set(HeaderRequestID, "req-trace")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			spans := sr.Ended()
			require.Len(t, spans, 1)
			span := spans[0]
			assert.Equal(t, trace.SpanKindServer, span.SpanKind())
			assert.Contains(t, span.Name(), "/transactions/:id")
			assert.Equal(t, tt.wantCode, span.Status().Code)
			assert.Equal(t, tt.wantDesc, span.Status().Description)

			id, ok := spanAttr(span, "request_id")
			require.True(t, ok)
			assert.Equal(t, "req-trace", id.AsString())

			code, ok := spanAttr(span, "error.code")
			assert.Equal(t, tt.wantErrCode, ok)
			if ok {
				assert.Equal(t, "ERR_MATCH_TOTAL_OUT_OF_RANGE", code.AsString())
			}
		})
	}
}

func TestSpanErrorMarker_TruncatesLongRequestID(t *testing.T) {
	router, sr := newTracedRouter(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPut, "/transactions/abc", nil)
	req.Header.Set(HeaderRequestID, strings.Repeat("r", 500))
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	id, ok := spanAttr(spans[0], "request_id")
	require.True(t, ok)
	assert.Len(t, id.AsString(), MaxRequestIDLength)
}

func TestSpanErrorMarker_WithNoSpan(t *testing.T) {
	router := gin.New()
	router.Use(SpanErrorMarker())
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
