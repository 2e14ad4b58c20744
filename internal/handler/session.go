package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/Payphone-Digital/storefront/internal/service"
	"github.com/Payphone-Digital/storefront/internal/session"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessions *service.SessionService
}

func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create starts a shopper session and returns the bearer token addressing it.
func (h *SessionHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "CreateSession")

	sess, token, err := h.sessions.Start(ctx)
	if err != nil {
		writeError(ctx, c, "Failed to create session", err)
		return
	}

	logger.InfoWithContext(ctx, "Session created").
		String("session_id", sess.ID).
		Log()

	c.JSON(http.StatusCreated, constants.BuildDataResponse("Session created", dto.SessionResponse{
		Token:     token,
		SessionID: sess.ID,
		ExpiresIn: h.sessions.TokenTTLSeconds(),
		CreatedAt: sess.CreatedAt,
	}))
}

// End discards the caller's session together with its cart.
func (h *SessionHandler) End(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "EndSession")
	sess := session.MustFrom(c)

	if err := h.sessions.End(ctx, sess); err != nil {
		writeError(ctx, c, "Failed to end session", err)
		return
	}

	logger.InfoWithContext(ctx, "Session ended").
		String("session_id", sess.ID).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse("Session ended", nil))
}
