package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/homegrid/community-service/internal/config"
	"github.com/homegrid/community-service/internal/observability"
)

// AuthorizationFilter establishes the caller identity from the bearer header.
// It never rejects a request: a missing or invalid token leaves the request
// anonymous and endpoints that need a principal enforce it themselves.
type AuthorizationFilter struct {
	codec   *TokenCodec
	header  string
	prefix  string
	public  pathAllowList
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthorizationFilter constructs the filter from the auth configuration.
func NewAuthorizationFilter(codec *TokenCodec, cfg config.AuthConfig, logger *zap.Logger, metrics *observability.Metrics) *AuthorizationFilter {
	return &AuthorizationFilter{
		codec:   codec,
		header:  cfg.HeaderName,
		prefix:  cfg.TokenPrefix + " ",
		public:  newPathAllowList(cfg.PublicPaths),
		logger:  logger,
		metrics: metrics,
	}
}

// Handle installs the token subject into the request context when valid.
func (f *AuthorizationFilter) Handle(c *fiber.Ctx) error {
	if f.public.allows(c.Path()) {
		return c.Next()
	}

	raw := c.Get(f.header)
	if !strings.HasPrefix(raw, f.prefix) {
		return c.Next()
	}

	token, err := f.codec.Decode(strings.TrimSpace(strings.TrimPrefix(raw, f.prefix)))
	if err != nil {
		f.logger.Debug("bearer token rejected", zap.String("path", c.Path()), zap.Error(err))
		f.metrics.RecordAuthOutcome(observability.OutcomeTokenRejected)
		return c.Next()
	}

	setPrincipal(c, token.Subject)
	f.metrics.RecordAuthOutcome(observability.OutcomeTokenAccepted)
	return c.Next()
}
