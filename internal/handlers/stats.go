package handlers

import (
	"errors"

	"fintrack/internal/services/stats"
	"fintrack/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	service stats.Service
}

func NewStatsHandler(service stats.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) Balance(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}
	from, to, err := parseRange(c)
	if err != nil {
		return badRange(c)
	}

	balance, err := h.service.GetBalanceStats(c.Context(), userID, from, to)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "balance stats", balance)
}

func (h *StatsHandler) Categories(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}
	from, to, err := parseRange(c)
	if err != nil {
		return badRange(c)
	}

	breakdown, err := h.service.GetCategoryStats(c.Context(), userID, from, to)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "category stats", breakdown)
}

func (h *StatsHandler) Bank(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	accounts, err := h.service.GetBankStats(c.Context(), userID)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "bank stats", accounts)
}

func (h *StatsHandler) TransactionsHistory(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}
	from, to, err := parseRange(c)
	if err != nil {
		return badRange(c)
	}

	history, err := h.service.GetTransactionsHistory(c.Context(), userID, from, to)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "transactions history", history)
}

func (h *StatsHandler) writeError(c *fiber.Ctx, err error) error {
	if errors.Is(err, stats.ErrUserNotFound) {
		return response.NotFound(c, err.Error())
	}
	return response.ServerError(c, "failed to compute stats")
}
