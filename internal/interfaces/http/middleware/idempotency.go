package middleware

import (
	"context"
	"net/http"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/erp/ledger/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderIdempotencyKey names the client-chosen key of a create request.
const HeaderIdempotencyKey = "Idempotency-Key"

// MaxIdempotencyKeyLength bounds the key accepted from clients.
const MaxIdempotencyKeyLength = 255

// Idempotency rejects a replayed Idempotency-Key with 409. Keys are scoped to
// the route. A request that fails (4xx/5xx) releases its key so the client
// can retry it. Requests without the header pass through untouched.
func Idempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig) gin.HandlerFunc {
	if store == nil || !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > MaxIdempotencyKeyLength {
			abortWithCode(c, dto.ErrCodeInvalidInput, "Idempotency-Key is too long")
			return
		}

		ctx := c.Request.Context()
		log := logger.GetGinLogger(c)
		scoped := c.Request.Method + " " + c.FullPath() + " " + key

		fresh, err := store.MarkProcessed(ctx, scoped, cfg.TTL)
		if err != nil {
			log.Error("Idempotency store unavailable", zap.Error(err))
			abortWithCode(c, dto.ErrCodeInternal, "Could not verify Idempotency-Key")
			return
		}
		if !fresh {
			log.Info("Duplicate request rejected", zap.String("idempotency_key", key))
			abortWithCode(c, dto.ErrCodeDuplicateRequest, "A request with this Idempotency-Key has already been processed")
			return
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			// The request context may be done by now.
			if err := store.Forget(context.WithoutCancel(ctx), scoped); err != nil {
				log.Warn("Failed to release idempotency key", zap.String("idempotency_key", key), zap.Error(err))
			}
		}
	}
}

func abortWithCode(c *gin.Context, code, message string) {
	SetErrorCode(c, code)
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
