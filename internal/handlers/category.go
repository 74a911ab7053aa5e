package handlers

import (
	"errors"
	"strconv"

	"fintrack/internal/services/category"
	"fintrack/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req category.Request
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
	return response.Success(c, "category created", created)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid category id")
	}

	var req category.Request
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	updated, err := h.service.Update(c.Context(), userID, uint(id), req)
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "category updated", updated)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	name := c.Query("name")
	categoryType := c.Query("type")
	if err := h.service.Delete(c.Context(), userID, name, categoryType); err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "category deleted", nil)
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	categories, err := h.service.List(c.Context(), userID, c.Query("type"))
	if err != nil {
		return h.writeError(c, err)
	}
	return response.Success(c, "categories", categories)
}

func (h *CategoryHandler) writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, category.ErrInvalidName),
		errors.Is(err, category.ErrInvalidType),
		errors.Is(err, category.ErrCategoryExists):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, category.ErrCategoryNotFound):
		return response.NotFound(c, err.Error())
	default:
		return response.ServerError(c, "category operation failed")
	}
}
