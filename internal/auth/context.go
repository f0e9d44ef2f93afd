package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "auth_principal"

type principalCtxKey struct{}

// WithPrincipal returns a copy of ctx carrying the authenticated principal id.
func WithPrincipal(ctx context.Context, principalID string) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, principalID)
}

// PrincipalFromContext retrieves the principal installed for the request.
func PrincipalFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(principalCtxKey{}).(string)
	return id, ok && id != ""
}

// CurrentPrincipal retrieves the principal from the fiber request.
func CurrentPrincipal(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(principalKey).(string)
	return id, ok && id != ""
}

func setPrincipal(c *fiber.Ctx, principalID string) {
	c.Locals(principalKey, principalID)
	c.SetUserContext(WithPrincipal(c.UserContext(), principalID))
}
