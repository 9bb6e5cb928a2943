package router

import (
	"sellit/internal/adapter/api/handler"
	"sellit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupOfferRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	offerHandler := handler.GetOfferHandler()

	offers := e.Group("/v1/offers")
	offers.Use(authMiddleware.Authenticate)
	offers.POST("", offerHandler.CreateOffer)
	offers.GET("/received", offerHandler.ListReceived)
	offers.GET("/sent", offerHandler.ListSent)
	offers.GET("/:id", offerHandler.GetOffer)
	offers.POST("/:id/accept", offerHandler.AcceptOffer)
	offers.POST("/:id/decline", offerHandler.DeclineOffer)
	offers.POST("/:id/counter", offerHandler.CounterOffer)
}
