package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

// RequireAuthenticated rejects requests without an installed principal.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentPrincipal(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
