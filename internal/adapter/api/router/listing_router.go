package router

import (
	"sellit/internal/adapter/api/handler"
	"sellit/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.ListListings)

	// Detail views count towards the view history when the caller is
	// authenticated, so the token is read when present.
	detail := e.Group("/v1/listings")
	detail.Use(authMiddleware.OptionalAuthenticate)
	detail.GET("/:id", listingHandler.GetListing)

	engage := e.Group("/v1/listings")
	engage.Use(authMiddleware.Authenticate)
	engage.POST("/:id/save", listingHandler.ToggleSave)
	engage.POST("/:id/view", listingHandler.RecordView)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(authMiddleware.Authenticate)
	myListings.GET("", listingHandler.ListMyListings)
	myListings.POST("", listingHandler.CreateListing)
	myListings.PUT("/:id", listingHandler.UpdateListing)
	myListings.DELETE("/:id", listingHandler.DeleteListing)
	myListings.POST("/:id/sold", listingHandler.MarkSold)
	myListings.POST("/:id/boost", listingHandler.BoostListing)

	me := e.Group("/v1/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("/saved", listingHandler.ListSaved)
	me.GET("/recently-viewed", listingHandler.RecentlyViewed)
}
