package router

import (
	"sellit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupListingRouter(e, authMiddleware)
	SetupOfferRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupBroadcastRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware)
	SetupAdvisoryRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
