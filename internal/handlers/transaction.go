package handlers

import (
	"errors"

	"fintrack/internal/services/transaction"
	"fintrack/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service transaction.Service
}

func NewTransactionHandler(service transaction.Service) *TransactionHandler {
	return &TransactionHandler{service: service}
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req transaction.CreateRequest
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
	return response.Success(c, "transaction created", created)
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req transaction.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	req.TransactionID = c.Params("id", req.TransactionID)
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	updated, err := h.service.Update(c.Context(), userID, req)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "transaction updated", updated)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "transaction id is required")
	}

	if err := h.service.Delete(c.Context(), userID, id); err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "transaction deleted", nil)
}

func (h *TransactionHandler) BulkDelete(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req struct {
		IDs []string `json:"ids" validate:"required,min=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	deleted, err := h.service.BulkDelete(c.Context(), userID, req.IDs)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "transactions deleted", fiber.Map{"deleted": deleted})
}

func (h *TransactionHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, transaction.ErrInvalidType):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, transaction.ErrCategoryNotFound),
		errors.Is(err, transaction.ErrAccountNotFound),
		errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, transaction.ErrAggregateNotFound):
		return response.NotFound(c, err.Error())
	default:
		return response.ServerError(c, "failed to process transaction")
	}
}
