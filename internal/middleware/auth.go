package middleware

import (
	"strings"

	"fintrack/internal/models"
	"fintrack/internal/repositories"
	"fintrack/internal/utils"
	"fintrack/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

const claimsKey = "claims"

// Protected validates the bearer token and attaches its claims to the
// request. The token version is checked against the user row so logout
// revokes everything issued before it.
func Protected(users repositories.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return response.Unauthorized(c)
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			return response.Unauthorized(c)
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil || user.TokenVersion != claims.TokenVersion {
			return response.Unauthorized(c)
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// ActorClaims returns the claims Protected attached, or nil when the request
// never passed through it.
func ActorClaims(c *fiber.Ctx) *models.UserClaims {
	claims, _ := c.Locals(claimsKey).(*models.UserClaims)
	return claims
}
