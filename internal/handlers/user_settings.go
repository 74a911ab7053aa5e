package handlers

import (
	"errors"

	"fintrack/internal/services/user"
	"fintrack/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserSettingsHandler struct {
	service user.Service
}

func NewUserSettingsHandler(service user.Service) *UserSettingsHandler {
	return &UserSettingsHandler{service: service}
}

func (h *UserSettingsHandler) Get(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	settings, err := h.service.GetSettings(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "failed to load settings")
	}
	return response.Success(c, "settings", settings)
}

func (h *UserSettingsHandler) Update(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req user.UpdateCurrencyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	settings, err := h.service.UpdateCurrency(c.Context(), userID, req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUnsupportedCurrency):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, user.ErrUserNotFound):
			return response.NotFound(c, err.Error())
		default:
			return response.ServerError(c, "failed to update settings")
		}
	}
	return response.Success(c, "settings updated", settings)
}
