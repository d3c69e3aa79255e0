package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erp/ledger/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newMetricsRouter(t *testing.T) (*gin.Engine, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	mw, err := HTTPMetrics(provider.Meter("http.server"))
	require.NoError(t, err)

	router := gin.New()
	router.Use(mw)
	router.GET("/transactions/:id", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.PUT("/transactions/:id", func(c *gin.Context) {
		SetErrorCode(c, "ERR_LINE_TOTAL_MISMATCH")
		c.Status(http.StatusUnprocessableEntity)
	})
	return router, reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func int64Sum(t *testing.T, m metricdata.Metrics, attrs ...attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	want := attribute.NewSet(attrs...)
	for _, dp := range sum.DataPoints {
		if dp.Attributes.Equals(&want) {
			return dp.Value
		}
	}
	return 0
}

func TestHTTPMetrics(t *testing.T) {
	router, reader := newMetricsRouter(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/transactions/a", nil),
		httptest.NewRequest(http.MethodGet, "/transactions/b", nil),
		httptest.NewRequest(http.MethodPut, "/transactions/a", nil),
		httptest.NewRequest(http.MethodGet, "/nowhere", nil),
	} {
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	metrics := collectMetrics(t, reader)
	total := metrics["http_server_request_total"]

	assert.Equal(t, int64(2), int64Sum(t, total,
		telemetry.AttrHTTPMethod.String(http.MethodGet),
		telemetry.AttrHTTPRoute.String("/transactions/:id"),
		telemetry.AttrHTTPStatusCode.Int(http.StatusOK),
	))
	assert.Equal(t, int64(1), int64Sum(t, total,
		telemetry.AttrHTTPMethod.String(http.MethodPut),
		telemetry.AttrHTTPRoute.String("/transactions/:id"),
		telemetry.AttrHTTPStatusCode.Int(http.StatusUnprocessableEntity),
		telemetry.AttrErrorCode.String("ERR_LINE_TOTAL_MISMATCH"),
	))
	assert.Equal(t, int64(1), int64Sum(t, total,
		telemetry.AttrHTTPMethod.String(http.MethodGet),
		telemetry.AttrHTTPRoute.String("unknown"),
		telemetry.AttrHTTPStatusCode.Int(http.StatusNotFound),
	))

	active := metrics["http_server_active_requests"]
	assert.Equal(t, int64(0), int64Sum(t, active))

	duration, ok := metrics["http_server_request_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range duration.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(4), count)
}

func TestHTTPMetrics_NilMeter(t *testing.T) {
	mw, err := HTTPMetrics(nil)
	require.NoError(t, err)

	router := gin.New()
	router.Use(mw)
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
