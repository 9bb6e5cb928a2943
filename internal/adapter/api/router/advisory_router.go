package router

import (
	"sellit/internal/adapter/api/handler"
	"sellit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAdvisoryRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	advisoryHandler := handler.GetAdvisoryHandler()

	ai := e.Group("/v1/ai")
	ai.Use(authMiddleware.Authenticate)
	ai.POST("/listing-suggestion", advisoryHandler.SuggestListing)
	ai.POST("/assistant", advisoryHandler.Advise)
}
