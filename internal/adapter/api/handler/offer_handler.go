package handler

import (
	"sellit/internal/usecase"
	"sellit/pkg/response"
	"sellit/pkg/utils"

	"github.com/labstack/echo/v4"
)

type OfferHandler struct {
	offerUseCase *usecase.OfferUseCase
}

func NewOfferHandler(offerUseCase *usecase.OfferUseCase) *OfferHandler {
	return &OfferHandler{
		offerUseCase: offerUseCase,
	}
}

type createOfferRequest struct {
	ListingID    string `json:"listing_id" validate:"required"`
	OfferedPrice int64  `json:"offered_price" validate:"required,gt=0"`
	Message      string `json:"message"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	var req createOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	buyerID := c.Get("uid").(string)

	offer, err := h.offerUseCase.CreateOffer(c.Request().Context(), buyerID, usecase.CreateOfferInput{
		ListingID:    req.ListingID,
		OfferedPrice: req.OfferedPrice,
		Message:      req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, offer)
}

func (h *OfferHandler) GetOffer(c echo.Context) error {
	userID := c.Get("uid").(string)

	offer, err := h.offerUseCase.GetOffer(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}

func (h *OfferHandler) AcceptOffer(c echo.Context) error {
	reviewerID := c.Get("uid").(string)

	result, err := h.offerUseCase.AcceptOffer(c.Request().Context(), reviewerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *OfferHandler) DeclineOffer(c echo.Context) error {
	reviewerID := c.Get("uid").(string)

	offer, err := h.offerUseCase.DeclineOffer(c.Request().Context(), reviewerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, offer)
}

type counterOfferRequest struct {
	ProposedPrice int64 `json:"proposed_price" validate:"required,gt=0"`
}

func (h *OfferHandler) CounterOffer(c echo.Context) error {
	var req counterOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reviewerID := c.Get("uid").(string)

	counter, err := h.offerUseCase.SendCounterOffer(c.Request().Context(), reviewerID, c.Param("id"), req.ProposedPrice)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, counter)
}

func (h *OfferHandler) ListReceived(c echo.Context) error {
	sellerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	offers, total, err := h.offerUseCase.ListReceived(c.Request().Context(), sellerID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, offers, total, pagination.Page, pagination.PageSize)
}

func (h *OfferHandler) ListSent(c echo.Context) error {
	buyerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	offers, total, err := h.offerUseCase.ListSent(c.Request().Context(), buyerID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, offers, total, pagination.Page, pagination.PageSize)
}
