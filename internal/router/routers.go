package router

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/storefront/config"
	"github.com/Payphone-Digital/storefront/internal/constants"
	"github.com/Payphone-Digital/storefront/internal/handler"
	"github.com/Payphone-Digital/storefront/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	sessionHandler    *handler.SessionHandler
	cartHandler       *handler.CartHandler
	modalHandler      *handler.ModalHandler
	catalogHandler    *handler.CatalogHandler
	navigationHandler *handler.NavigationHandler
	healthHandler     *handler.HealthHandler

	validMw   *middleware.ValidationMiddleware
	sessionMw *middleware.SessionMiddleware
	Config    *config.Config
}

func NewRouter(
	session *handler.SessionHandler,
	cart *handler.CartHandler,
	modal *handler.ModalHandler,
	catalog *handler.CatalogHandler,
	navigation *handler.NavigationHandler,
	health *handler.HealthHandler,

	validMw *middleware.ValidationMiddleware,
	sessionMw *middleware.SessionMiddleware,
	config *config.Config,
) *Router {
	return &Router{
		sessionHandler:    session,
		cartHandler:       cart,
		modalHandler:      modal,
		catalogHandler:    catalog,
		navigationHandler: navigation,
		healthHandler:     health,

		validMw:   validMw,
		sessionMw: sessionMw,
		Config:    config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestContextMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestResponseMiddleware())
	router.Use(middleware.SecurityLoggingMiddleware())
	router.Use(middleware.CORS(r.Config.Storefront.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(constants.MsgNotFound, nil))
	})

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)
		v1 := api.Group("/v1")
		{
			v1.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))

			v1.GET("/health", r.healthHandler.HealthCheck)

			r.sessionRoutes(v1)
			r.navigationRoutes(v1)

			shopper := v1.Group("")
			shopper.Use(r.sessionMw.RequireSession())
			{
				// Streams run until the client goes away and skip the
				// request timeout.
				shopper.GET("/cart/events", r.cartHandler.Events)

				timed := shopper.Group("")
				timed.Use(middleware.RequestTimeoutMiddleware(r.Config.App.Timeout))
				{
					r.cartRoutes(timed)
					r.modalRoutes(timed)
					r.catalogRoutes(timed)
				}
			}
		}
	}

	return router
}
