package handlers

import (
	"time"

	"fintrack/internal/middleware"
	"fintrack/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// actorID extracts the authenticated user id, or writes a 401 and reports
// false when the claims are missing.
func actorID(c *fiber.Ctx) (uint, bool) {
	claims := middleware.ActorClaims(c)
	if claims == nil {
		return 0, false
	}
	return claims.UserID, true
}

// parseRange reads the from/to query bounds. Both are required, date-only or
// RFC 3339.
func parseRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func badRange(c *fiber.Ctx) error {
	return response.BadRequest(c, "from and to must be dates (2006-01-02 or RFC 3339)")
}
