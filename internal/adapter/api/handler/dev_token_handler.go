package handler

import (
	"github.com/labstack/echo/v4"

	"sellit/internal/infrastructure/firebase"
	"sellit/pkg/errors"
	"sellit/pkg/response"
)

// DevTokenHandler mints custom tokens for local testing. Only routed in the
// development environment.
type DevTokenHandler struct {
	authClient *firebase.AuthClient
}

var devTokenHandler *DevTokenHandler

func SetupDevTokenHandler(authClient *firebase.AuthClient) {
	devTokenHandler = &DevTokenHandler{authClient: authClient}
}

func GetDevTokenHandler() *DevTokenHandler {
	return devTokenHandler
}

type devTokenRequest struct {
	UID string `json:"uid" validate:"required"`
}

func (h *DevTokenHandler) GenerateToken(c echo.Context) error {
	var req devTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if h.authClient == nil {
		return response.Error(c, errors.Unavailable("Authentication is not configured", nil))
	}

	token, err := h.authClient.GenerateToken(c.Request().Context(), req.UID)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to mint token", err))
	}

	return response.Success(c, map[string]string{
		"uid":   req.UID,
		"token": token,
	})
}
