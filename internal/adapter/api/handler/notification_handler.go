package handler

import (
	"sellit/internal/usecase"
	"sellit/pkg/response"
	"sellit/pkg/utils"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	notificationUseCase *usecase.NotificationUseCase
}

func NewNotificationHandler(notificationUseCase *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
	}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	recipientID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	feed, total, err := h.notificationUseCase.ListNotifications(c.Request().Context(), recipientID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, feed, total, pagination.Page, pagination.PageSize)
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	recipientID := c.Get("uid").(string)

	notification, err := h.notificationUseCase.MarkRead(c.Request().Context(), recipientID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, notification)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	recipientID := c.Get("uid").(string)

	if err := h.notificationUseCase.MarkAllRead(c.Request().Context(), recipientID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "read"})
}

func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	recipientID := c.Get("uid").(string)

	if err := h.notificationUseCase.DeleteNotification(c.Request().Context(), recipientID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *NotificationHandler) ClearAll(c echo.Context) error {
	recipientID := c.Get("uid").(string)

	if err := h.notificationUseCase.ClearAll(c.Request().Context(), recipientID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "cleared"})
}
