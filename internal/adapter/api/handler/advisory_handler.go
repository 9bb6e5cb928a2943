package handler

import (
	"sellit/internal/domain/service"
	"sellit/internal/usecase"
	"sellit/pkg/response"

	"github.com/labstack/echo/v4"
)

type AdvisoryHandler struct {
	advisoryUseCase *usecase.AdvisoryUseCase
}

func NewAdvisoryHandler(advisoryUseCase *usecase.AdvisoryUseCase) *AdvisoryHandler {
	return &AdvisoryHandler{
		advisoryUseCase: advisoryUseCase,
	}
}

type suggestListingRequest struct {
	Title     string `json:"title" validate:"required"`
	Condition string `json:"condition" validate:"required"`
	Category  string `json:"category" validate:"required"`
}

func (h *AdvisoryHandler) SuggestListing(c echo.Context) error {
	var req suggestListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	suggestion, err := h.advisoryUseCase.SuggestListing(c.Request().Context(), userID, usecase.SuggestListingInput{
		Title:     req.Title,
		Condition: req.Condition,
		Category:  req.Category,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, suggestion)
}

type adviseRequest struct {
	Query   string               `json:"query" validate:"required"`
	History []service.AdviceTurn `json:"history"`
}

func (h *AdvisoryHandler) Advise(c echo.Context) error {
	var req adviseRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	advice, err := h.advisoryUseCase.Advise(c.Request().Context(), userID, usecase.AdviseInput{
		Query:   req.Query,
		History: req.History,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, advice)
}
