package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	rl := NewRateLimiter(limit, window)
	t.Cleanup(rl.Stop)
	now := time.Date(2020, 7, 1, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestRateLimiter(t *testing.T) {
	t.Run("blocks requests exceeding limit", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			assert.True(t, rl.Allow("10.0.0.1"))
		}
		assert.False(t, rl.Allow("10.0.0.1"))
		assert.Equal(t, 0, rl.Remaining("10.0.0.1"))
		assert.True(t, rl.Allow("10.0.0.2"), "keys are limited separately")
	})

	t.Run("resets after window", func(t *testing.T) {
		rl, now := newTestLimiter(t, 1, time.Minute)

		assert.True(t, rl.Allow("k"))
		assert.False(t, rl.Allow("k"))

		*now = now.Add(time.Minute)
		assert.Equal(t, 1, rl.Remaining("k"))
		assert.True(t, rl.Allow("k"))
	})

	t.Run("concurrent access is safe", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 50, time.Minute)

		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if rl.Allow("k") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, allowed)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 1, time.Minute)
		rl.Stop()
		rl.Stop()
	})
}

func TestRateLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)
	router := gin.New()
	router.Use(RequestID(), RateLimit(rl))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = serve(router, http.MethodGet, "/test", nil)
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Contains(t, last.Body.String(), `"code":"ERR_RATE_LIMITED"`)
}

func TestRateLimitByKey(t *testing.T) {
	rl, _ := newTestLimiter(t, 1, time.Minute)
	router := gin.New()
	router.Use(RateLimitByKey(rl, func(c *gin.Context) string { return c.GetHeader("X-Client") }))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(router, http.MethodGet, "/test", map[string]string{"X-Client": "a"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/test", map[string]string{"X-Client": "a"}).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/test", map[string]string{"X-Client": "b"}).Code)
}
