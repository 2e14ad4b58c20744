package middleware

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/storefront/internal/constants"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestContextMiddleware seeds the request context with the request id,
// client address and start time, and echoes the request id back.
func RequestContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
		ctx = ctxutil.WithValue(ctx, ctxutil.ClientIPKey, c.ClientIP())
		ctx = ctxutil.WithValue(ctx, ctxutil.UserAgentKey, c.Request.UserAgent())
		ctx = ctxutil.WithValue(ctx, ctxutil.StartTimeKey, time.Now())
		c.Request = c.Request.WithContext(ctx)

		c.Set(string(constants.CtxKeyRequestID), requestID)
		c.Header(constants.HeaderXRequestID, requestID)

		c.Next()
	}
}

// RequestTimeoutMiddleware bounds the request context. Streaming routes must
// not use it.
func RequestTimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := ctxutil.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		select {
		case <-ctx.Done():
			logger.WarnWithContext(ctx, "Request timeout before processing").
				Duration(timeout).
				Log()
			c.AbortWithStatusJSON(http.StatusRequestTimeout, gin.H{
				constants.ResponseFieldMessage: "Request timeout",
			})
			return
		default:
			c.Next()
		}
	}
}
