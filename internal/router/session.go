package router

import (
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) sessionRoutes(version *gin.RouterGroup) {
	sessions := version.Group("/sessions")
	sessions.Use(middleware.RequestTimeoutMiddleware(r.Config.App.Timeout))
	{
		// Start a shopper session; the token addresses it from then on
		sessions.POST("", r.sessionHandler.Create)
		sessions.DELETE("/current", r.sessionMw.RequireSession(), r.sessionHandler.End)
	}
}
