package handler

import (
	"sellit/internal/usecase"
	"sellit/pkg/response"
	"sellit/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

type createListingRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Price        int64  `json:"price" validate:"required,gt=0"`
	Category     string `json:"category" validate:"required"`
	Location     string `json:"location"`
	ImageURL     string `json:"image_url" validate:"omitempty,url"`
	IsUrgent     bool   `json:"is_urgent"`
	IsNegotiable bool   `json:"is_negotiable"`
	Boost        bool   `json:"boost"`
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), sellerID, usecase.CreateListingInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
		IsUrgent:     req.IsUrgent,
		IsNegotiable: req.IsNegotiable,
		Boost:        req.Boost,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListListings(
		c.Request().Context(),
		c.QueryParam("category"),
		c.QueryParam("status"),
		c.QueryParam("q"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

// GetListing serves the detail view. An authenticated viewer's visit counts
// as a view; anonymous browsing does not.
func (h *ListingHandler) GetListing(c echo.Context) error {
	viewerID, _ := c.Get("uid").(string)

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req createListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.EditListing(c.Request().Context(), c.Param("id"), sellerID, usecase.UpdateListingInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Location:     req.Location,
		ImageURL:     req.ImageURL,
		IsUrgent:     req.IsUrgent,
		IsNegotiable: req.IsNegotiable,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), c.Param("id"), sellerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *ListingHandler) MarkSold(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.MarkSold(c.Request().Context(), c.Param("id"), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) BoostListing(c echo.Context) error {
	sellerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.BoostListing(c.Request().Context(), c.Param("id"), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) ToggleSave(c echo.Context) error {
	viewerID := c.Get("uid").(string)

	saved, err := h.listingUseCase.ToggleSave(c.Request().Context(), viewerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"saved": saved})
}

func (h *ListingHandler) RecordView(c echo.Context) error {
	viewerID := c.Get("uid").(string)

	if err := h.listingUseCase.RecordView(c.Request().Context(), c.Param("id"), viewerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "recorded"})
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListMyListings(c.Request().Context(), sellerID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListSaved(c echo.Context) error {
	userID := c.Get("uid").(string)

	listings, err := h.listingUseCase.ListSaved(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listings)
}

func (h *ListingHandler) RecentlyViewed(c echo.Context) error {
	userID := c.Get("uid").(string)

	items, err := h.listingUseCase.RecentlyViewed(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, items)
}
