package handlers

import (
	"errors"

	"fintrack/internal/services/transfer"
	"fintrack/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransferHandler struct {
	service transfer.Service
}

func NewTransferHandler(service transfer.Service) *TransferHandler {
	return &TransferHandler{service: service}
}

func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req struct {
		FromAccountID string  `json:"from_account_id" validate:"required"`
		ToAccountID   string  `json:"to_account_id" validate:"required"`
		Amount        float64 `json:"amount" validate:"required,gt=0"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	source, err := h.service.MoneyTransfer(c.Context(), userID, req.FromAccountID, req.ToAccountID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, transfer.ErrInvalidAmount),
			errors.Is(err, transfer.ErrSameAccount),
			errors.Is(err, transfer.ErrInsufficientFunds):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, transfer.ErrAccountNotFound):
			return response.NotFound(c, err.Error())
		default:
			return response.ServerError(c, "transfer failed")
		}
	}
	return response.Success(c, "transfer completed", source)
}
