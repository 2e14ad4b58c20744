package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Payphone-Digital/storefront/internal/constants"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoggingMiddleware logs HTTP requests and responses
func LoggingMiddleware() gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			logger.LogRequest(
				param.Method,
				param.Path,
				param.StatusCode,
				param.Latency.Milliseconds(),
				param.ClientIP,
				param.Request.UserAgent(),
			)

			if param.ErrorMessage != "" {
				logger.GetLogger().Error("Request error",
					zap.String("error", param.ErrorMessage),
					zap.String("method", param.Method),
					zap.String("path", param.Path),
					zap.String("client_ip", param.ClientIP),
					zap.Int("status_code", param.StatusCode),
					zap.Duration("latency", param.Latency),
				)
			}

			return ""
		},
		Output: io.Discard,
		// Event streams are long-lived.
		SkipPaths: []string{"/api/v1/cart/events"},
	})
}

// RequestResponseMiddleware logs detailed request and response information
func RequestResponseMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var requestBody []byte
		if c.Request.Body != nil && c.Request.ContentLength > 0 && c.Request.ContentLength < 64*1024 {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		c.Next()

		latency := time.Since(startTime)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status_code", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.Int("response_size", c.Writer.Size()),
		}
		if requestID := c.GetString(string(constants.CtxKeyRequestID)); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}
		if gin.Mode() == gin.DebugMode && len(requestBody) > 0 {
			fields = append(fields, zap.ByteString("request_body", requestBody))
		}

		switch {
		case c.Writer.Status() >= 500:
			logger.GetLogger().Error("Server error", fields...)
		case c.Writer.Status() >= 400:
			logger.GetLogger().Warn("Client error", fields...)
		case latency > time.Second*2 && !isEventStream(c):
			logger.GetLogger().Warn("Slow request", fields...)
		default:
			logger.GetLogger().Debug("Request completed", fields...)
		}
	}
}

func isEventStream(c *gin.Context) bool {
	return strings.HasPrefix(c.Writer.Header().Get(constants.HeaderContentType), constants.ContentTypeEventStream)
}

// RecoveryMiddleware recovers from panics and logs them. A panic carrying a
// domain error keeps its code in the response.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.LogPanic(recovered)

		code := apperrors.CodeInternal
		if err, ok := recovered.(error); ok {
			code = apperrors.GetErrorCode(err)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			constants.BuildCodedErrorResponse(code, constants.MsgInternalError, nil))
	})
}

// SecurityLoggingMiddleware logs security-related events
func SecurityLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		userAgent := c.Request.UserAgent()

		if isSuspiciousUserAgent(userAgent) {
			logger.GetLogger().Warn("Suspicious user agent detected",
				zap.String("client_ip", clientIP),
				zap.String("user_agent", userAgent),
				zap.String("path", c.Request.URL.Path),
			)
		}

		if c.Request.URL.Path == "/api/v1/sessions" && c.Request.Method == http.MethodPost {
			logger.GetLogger().Info("Session requested",
				zap.String("client_ip", clientIP),
				zap.String("user_agent", userAgent),
			)
		}

		c.Next()
	}
}

func isSuspiciousUserAgent(userAgent string) bool {
	suspiciousPatterns := []string{
		"sqlmap", "nikto", "nmap", "masscan", "burp", "scanner",
	}

	ua := strings.ToLower(userAgent)
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(ua, pattern) {
			return true
		}
	}

	return false
}
