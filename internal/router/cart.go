package router

import (
	"github.com/Payphone-Digital/storefront/internal/dto"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) cartRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	{
		cart.GET("", r.cartHandler.GetCart)
		cart.DELETE("", r.cartHandler.ClearCart)

		cart.POST("/items",
			r.validMw.ValidateRequestBody(middleware.Body[dto.AddCartItemRequest]()),
			r.cartHandler.AddItem)
		cart.GET("/items/:id", r.cartHandler.ItemStatus)
		cart.PUT("/items/:id",
			r.validMw.ValidateRequestBody(middleware.Body[dto.UpdateCartItemRequest]()),
			r.cartHandler.UpdateItem)
		cart.DELETE("/items/:id", r.cartHandler.RemoveItem)
	}
}

func (r *Router) modalRoutes(rg *gin.RouterGroup) {
	modal := rg.Group("/modal")
	{
		modal.GET("", r.modalHandler.Get)
		modal.POST("",
			r.validMw.ValidateRequestBody(middleware.Body[dto.OpenModalRequest]()),
			r.modalHandler.Open)
		modal.DELETE("", r.modalHandler.Close)
	}
}
