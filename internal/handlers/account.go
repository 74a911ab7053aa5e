package handlers

import (
	"errors"

	"fintrack/internal/services/account"
	"fintrack/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

func (h *AccountHandler) Create(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req account.NewAccount
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	created, err := h.service.Create(c.Context(), userID, req)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "account created", created)
}

func (h *AccountHandler) List(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	accounts, err := h.service.List(c.Context(), userID)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "accounts", accounts)
}

func (h *AccountHandler) BulkAdd(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req struct {
		Accounts []account.NewAccount `json:"accounts" validate:"required,min=1,dive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	accounts, err := h.service.BulkAdd(c.Context(), userID, req.Accounts)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "accounts created", accounts)
}

func (h *AccountHandler) UpsertSelection(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req struct {
		Accounts []account.NewAccount `json:"accounts" validate:"required,min=1,dive"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	accounts, err := h.service.UpsertSelection(c.Context(), userID, req.Accounts)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "accounts synced", accounts)
}

func (h *AccountHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, account.ErrInvalidName),
		errors.Is(err, account.ErrNothingToCreate),
		errors.Is(err, account.ErrAccountExists):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, account.ErrAccountNotFound):
		return response.NotFound(c, err.Error())
	default:
		return response.ServerError(c, "account operation failed")
	}
}
