package handler

import (
	"net/http"

	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/Payphone-Digital/storefront/internal/session"
	ctxutil "github.com/Payphone-Digital/storefront/pkg/context"
	"github.com/Payphone-Digital/storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ModalHandler struct{}

func NewModalHandler() *ModalHandler {
	return &ModalHandler{}
}

func modalResponse(sess *session.Session) dto.ModalResponse {
	resp := dto.ModalResponse{ScrollLocked: sess.Viewport.ScrollLocked()}
	if state, ok := sess.Modal.Current(); ok {
		resp.Open = true
		resp.Type = state.Type
		resp.Payload = state.Payload
	}
	return resp
}

func (h *ModalHandler) Get(c *gin.Context) {
	sess := session.MustFrom(c)
	c.JSON(http.StatusOK, constants.BuildDataResponse("Modal state fetched", modalResponse(sess)))
}

// Open shows the requested modal, replacing any modal already open.
func (h *ModalHandler) Open(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "OpenModal")
	sess := session.MustFrom(c)
	req := middleware.RequestBody[dto.OpenModalRequest](c)

	sess.Modal.Open(req.Type, req.Payload)

	logger.InfoWithContext(ctx, "Modal opened").
		String("modal_type", req.Type).
		Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse("Modal opened", modalResponse(sess)))
}

func (h *ModalHandler) Close(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), "handler", "CloseModal")
	sess := session.MustFrom(c)

	sess.Modal.Close()

	logger.DebugWithContext(ctx, "Modal closed").Log()

	c.JSON(http.StatusOK, constants.BuildDataResponse("Modal closed", modalResponse(sess)))
}
