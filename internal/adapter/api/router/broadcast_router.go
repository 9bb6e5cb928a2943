package router

import (
	"sellit/internal/adapter/api/handler"
	"sellit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupBroadcastRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	broadcastHandler := handler.GetBroadcastHandler()

	e.GET("/v1/broadcasts", broadcastHandler.ListBroadcasts)
	e.GET("/v1/broadcasts/:id", broadcastHandler.GetBroadcast)

	broadcasts := e.Group("/v1/broadcasts")
	broadcasts.Use(authMiddleware.Authenticate)
	broadcasts.POST("", broadcastHandler.CreateBroadcast)
	broadcasts.POST("/:id/fulfill", broadcastHandler.FulfillBroadcast)
	broadcasts.POST("/:id/respond", broadcastHandler.RespondToBroadcast)
}
