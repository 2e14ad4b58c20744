package middleware

import (
	"net/http"
	"strings"

	"github.com/Payphone-Digital/storefront/internal/constants"
	apperrors "github.com/Payphone-Digital/storefront/internal/errors"
	"github.com/Payphone-Digital/storefront/internal/service"
	"github.com/Payphone-Digital/storefront/internal/session"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type SessionMiddleware struct {
	sessions *service.SessionService
}

func NewSessionMiddleware(sessions *service.SessionService) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireSession resolves the bearer token to a shopper session and
// provisions it for the handlers.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, ok := bearerToken(c)
		if !ok {
			logger.WarnWithContext(ctx, "Missing or malformed Authorization header").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Log()
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		sess, err := m.sessions.Resolve(ctx, token)
		if err != nil {
			logger.WarnWithContext(ctx, "Session resolution failed").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Err(err).
				Log()
			abortWithError(c, err)
			return
		}

		session.Attach(c, sess)
		logger.DebugWithContext(c.Request.Context(), "Session provisioned").Log()

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		// EventSource cannot set headers; the stream endpoint accepts the
		// token as a query parameter instead.
		if t := c.Query("access_token"); t != "" && strings.HasSuffix(c.FullPath(), "/events") {
			return t, true
		}
		return "", false
	}

	tokenParts := strings.SplitN(authHeader, " ", 2)
	if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") || tokenParts[1] == "" {
		return "", false
	}
	return tokenParts[1], true
}

func abortWithError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	message := apperrors.GetErrorMessage(err)
	if status >= http.StatusInternalServerError {
		message = constants.MsgInternalError
		if status == http.StatusServiceUnavailable {
			message = constants.MsgServiceUnavailable
		}
	}
	c.AbortWithStatusJSON(status, constants.BuildCodedErrorResponse(apperrors.GetErrorCode(err), message, nil))
}
