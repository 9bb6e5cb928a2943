package handler

import (
	"sellit/internal/usecase"
	"sellit/pkg/response"
	"sellit/pkg/utils"

	"github.com/labstack/echo/v4"
)

type BroadcastHandler struct {
	broadcastUseCase *usecase.BroadcastUseCase
	chatUseCase      *usecase.ChatUseCase
}

func NewBroadcastHandler(broadcastUseCase *usecase.BroadcastUseCase, chatUseCase *usecase.ChatUseCase) *BroadcastHandler {
	return &BroadcastHandler{
		broadcastUseCase: broadcastUseCase,
		chatUseCase:      chatUseCase,
	}
}

type createBroadcastRequest struct {
	Need      string `json:"need" validate:"required"`
	Details   string `json:"details"`
	MinBudget int64  `json:"min_budget" validate:"gte=0"`
	MaxBudget int64  `json:"max_budget" validate:"gte=0"`
	Location  string `json:"location"`
	Category  string `json:"category" validate:"required"`
	IsBoosted bool   `json:"is_boosted"`
}

func (h *BroadcastHandler) CreateBroadcast(c echo.Context) error {
	var req createBroadcastRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	authorID := c.Get("uid").(string)

	broadcast, err := h.broadcastUseCase.CreateBroadcast(c.Request().Context(), authorID, usecase.CreateBroadcastInput{
		Need:      req.Need,
		Details:   req.Details,
		MinBudget: req.MinBudget,
		MaxBudget: req.MaxBudget,
		Location:  req.Location,
		Category:  req.Category,
		IsBoosted: req.IsBoosted,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, broadcast)
}

func (h *BroadcastHandler) ListBroadcasts(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	broadcasts, total, err := h.broadcastUseCase.ListActive(c.Request().Context(), pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, broadcasts, total, pagination.Page, pagination.PageSize)
}

func (h *BroadcastHandler) GetBroadcast(c echo.Context) error {
	broadcast, err := h.broadcastUseCase.GetBroadcast(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, broadcast)
}

func (h *BroadcastHandler) FulfillBroadcast(c echo.Context) error {
	authorID := c.Get("uid").(string)

	broadcast, err := h.broadcastUseCase.FulfillBroadcast(c.Request().Context(), authorID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, broadcast)
}

// RespondToBroadcast drops the responder into a chat with the author.
func (h *BroadcastHandler) RespondToBroadcast(c echo.Context) error {
	responderID := c.Get("uid").(string)

	chat, err := h.chatUseCase.RespondToBroadcast(c.Request().Context(), responderID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}
