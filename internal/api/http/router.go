package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/homegrid/community-service/internal/api/http/handlers"
	"github.com/homegrid/community-service/internal/auth"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Users       *handlers.UsersHandler
	Account     *handlers.AccountHandler
	Communities *handlers.CommunitiesHandler

	Authentication *auth.AuthenticationFilter
	Authorization  *auth.AuthorizationFilter
	OwnershipGuard *auth.ResourceOwnershipGuard

	// LoginRateLimit caps login attempts per client IP per minute. Zero
	// disables the limiter.
	LoginRateLimit int
}

// RegisterRoutes wires the request pipeline and HTTP routes. The
// authorization filter and the ownership guard run on every request, in that
// order, before any route handler.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Authorization.Handle)
	app.Use(cfg.OwnershipGuard.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", append(loginLimiter(cfg.LoginRateLimit), cfg.Authentication.Handle, cfg.Users.Login)...)
	authGroup.Post("/password/reset/request", cfg.Account.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Account.ConfirmPasswordReset)
	authGroup.Post("/email/confirm", cfg.Account.ConfirmEmail)
	authGroup.Post("/email/confirm/request", cfg.Account.ResendEmailConfirmation)

	authenticated := auth.RequireAuthenticated()
	app.Get("/users/me", authenticated, cfg.Users.Me)

	communities := app.Group("/communities", authenticated)
	communities.Post("", cfg.Communities.Create)
	communities.Post("/:"+auth.CommunityIDParam+"/admins", cfg.Communities.AddAdmin)
	communities.Post("/:"+auth.CommunityIDParam+"/amenities", cfg.Communities.AddAmenity)
}

func loginLimiter(perMinute int) []fiber.Handler {
	if perMinute <= 0 {
		return nil
	}
	return []fiber.Handler{limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.NewDomainError(apperrors.CodeTooManyRequests, "too many login attempts", fiber.StatusTooManyRequests, nil)
		},
	})}
}
