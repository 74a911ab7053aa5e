package handlers

import (
	"errors"

	"fintrack/internal/models"
	"fintrack/internal/services/auth"
	"fintrack/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// userView strips the password hash before a user row leaves the API.
func userView(user *models.User) fiber.Map {
	return fiber.Map{
		"id":       user.ID,
		"email":    user.Email,
		"name":     user.Name,
		"currency": user.Currency,
	}
}

type AuthHandler struct {
	service auth.Service
}

func NewAuthHandler(service auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, tokens, err := h.service.Register(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "registration failed")
	}
	return response.Success(c, "registered", fiber.Map{
		"user":   userView(user),
		"tokens": tokens,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	user, tokens, err := h.service.Login(c.Context(), req)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Unauthorized(c)
		}
		return response.ServerError(c, "login failed")
	}
	return response.Success(c, "logged in", fiber.Map{
		"user":   userView(user),
		"tokens": tokens,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	if err := h.service.Logout(c.Context(), userID); err != nil {
		return response.ServerError(c, "logout failed")
	}
	return response.Success(c, "logged out", nil)
}
