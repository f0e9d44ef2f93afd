package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/homegrid/community-service/internal/config"
	"github.com/homegrid/community-service/internal/observability"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

// AuthenticationFilter guards the login endpoint. On success it mints a
// bearer token, exposes it and the principal id as response headers and hands
// the request to the next handler.
type AuthenticationFilter struct {
	authenticator Authenticator
	codec         *TokenCodec
	cfg           config.AuthConfig
	logger        *zap.Logger
	metrics       *observability.Metrics
	now           func() time.Time
}

// NewAuthenticationFilter constructs the filter.
func NewAuthenticationFilter(authenticator Authenticator, codec *TokenCodec, cfg config.AuthConfig, logger *zap.Logger, metrics *observability.Metrics) *AuthenticationFilter {
	return &AuthenticationFilter{
		authenticator: authenticator,
		codec:         codec,
		cfg:           cfg,
		logger:        logger,
		metrics:       metrics,
		now:           time.Now,
	}
}

// Handle authenticates the credentials in the request body.
func (f *AuthenticationFilter) Handle(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		f.metrics.RecordAuthOutcome(observability.OutcomeLoginFailure)
		return apperrors.NewCredentialsIncorrect()
	}
	identifier := req.identifier()
	if identifier == "" || req.Password == "" {
		f.metrics.RecordAuthOutcome(observability.OutcomeLoginFailure)
		return apperrors.NewCredentialsIncorrect()
	}

	principalID, err := f.authenticator.Authenticate(c.UserContext(), identifier, req.Password)
	if err != nil {
		if errors.Is(err, ErrCollaboratorUnavailable) {
			f.logger.Error("credential lookup failed", zap.String("identifier", identifier), zap.Error(err))
			return apperrors.NewCollaboratorUnavailable(err)
		}
		f.logger.Info("authentication failed", zap.String("identifier", identifier))
		f.metrics.RecordAuthOutcome(observability.OutcomeLoginFailure)
		return apperrors.NewCredentialsIncorrect()
	}

	f.logger.Info("authenticating principal", zap.String("principal_id", principalID))

	token, err := f.codec.Encode(principalID, f.now().Add(f.cfg.AccessTokenTTL()))
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	c.Set(f.cfg.TokenResponseHeader, f.cfg.TokenPrefix+" "+token)
	c.Set(f.cfg.PrincipalResponseHeader, principalID)
	setPrincipal(c, principalID)
	f.metrics.RecordAuthOutcome(observability.OutcomeLoginSuccess)
	return c.Next()
}
