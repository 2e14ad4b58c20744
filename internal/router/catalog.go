package router

import (
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) catalogRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		// Listing with page, tab and category query state
		products.GET("", r.catalogHandler.List)
		products.GET("/:id", r.catalogHandler.Get)
	}
}

// navigationRoutes rewrite the caller's query string. They hold no session
// state and need no token.
func (r *Router) navigationRoutes(rg *gin.RouterGroup) {
	navigation := rg.Group("/navigation")
	navigation.Use(middleware.RequestTimeoutMiddleware(r.Config.App.Timeout))
	{
		navigation.POST("/page",
			r.validMw.ValidateRequestBody(middleware.Body[dto.SetPageRequest]()),
			r.navigationHandler.SetPage)
		navigation.POST("/tab",
			r.validMw.ValidateRequestBody(middleware.Body[dto.SetTabRequest]()),
			r.navigationHandler.SetTab)
		navigation.POST("/params",
			r.validMw.ValidateRequestBody(middleware.Body[dto.SetParamsRequest]()),
			r.navigationHandler.SetParams)
	}
}
