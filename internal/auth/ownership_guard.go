package auth

import (
	"context"
	"net/http"
	"slices"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/homegrid/community-service/internal/observability"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

// CommunityIDParam names the path segment holding the community id in guard
// patterns.
const CommunityIDParam = "communityId"

// CommunityAdminLister returns the principal ids administering a community.
type CommunityAdminLister interface {
	ListAdminPrincipalIDs(ctx context.Context, communityID string) ([]string, error)
}

// GuardRule selects requests the ownership guard applies to. An empty Method
// matches every method.
type GuardRule struct {
	Method  string
	Pattern string
}

// DefaultGuardRules cover the privileged community operations.
var DefaultGuardRules = []GuardRule{
	{Method: http.MethodPost, Pattern: "/communities/:" + CommunityIDParam + "/admins"},
	{Method: http.MethodPost, Pattern: "/communities/:" + CommunityIDParam + "/amenities"},
}

type compiledRule struct {
	method  string
	pattern pathPattern
}

// ResourceOwnershipGuard lets a guarded request through only when the current
// principal administers the community named in its path. It must run after
// AuthorizationFilter.
type ResourceOwnershipGuard struct {
	admins  CommunityAdminLister
	rules   []compiledRule
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewResourceOwnershipGuard builds the guard. DefaultGuardRules apply when no
// rules are given.
func NewResourceOwnershipGuard(admins CommunityAdminLister, logger *zap.Logger, metrics *observability.Metrics, rules ...GuardRule) *ResourceOwnershipGuard {
	if len(rules) == 0 {
		rules = DefaultGuardRules
	}
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		compiled = append(compiled, compiledRule{method: r.Method, pattern: compilePattern(r.Pattern)})
	}
	return &ResourceOwnershipGuard{admins: admins, rules: compiled, logger: logger, metrics: metrics}
}

// Handle enforces community admin membership on guarded paths.
func (g *ResourceOwnershipGuard) Handle(c *fiber.Ctx) error {
	communityID, guarded := g.match(c.Method(), c.Path())
	if !guarded {
		return c.Next()
	}

	principalID, ok := CurrentPrincipal(c)
	if !ok {
		g.logger.Info("guarded path denied: anonymous caller",
			zap.String("path", c.Path()), zap.String("community_id", communityID))
		g.metrics.RecordAuthOutcome(observability.OutcomeGuardDenied)
		return errNotAdmin()
	}

	adminIDs, err := g.admins.ListAdminPrincipalIDs(c.UserContext(), communityID)
	if err != nil {
		g.logger.Error("community admin lookup failed",
			zap.String("community_id", communityID),
			zap.String("principal_id", principalID),
			zap.Error(err))
		g.metrics.RecordAuthOutcome(observability.OutcomeGuardLookupFail)
		return apperrors.NewCollaboratorUnavailable(err)
	}

	if !slices.Contains(adminIDs, principalID) {
		g.logger.Info("guarded path denied: not a community admin",
			zap.String("community_id", communityID), zap.String("principal_id", principalID))
		g.metrics.RecordAuthOutcome(observability.OutcomeGuardDenied)
		return errNotAdmin()
	}

	g.metrics.RecordAuthOutcome(observability.OutcomeGuardAllowed)
	return c.Next()
}

func (g *ResourceOwnershipGuard) match(method, path string) (string, bool) {
	for _, rule := range g.rules {
		if rule.method != "" && rule.method != method {
			continue
		}
		if params, ok := rule.pattern.match(path); ok {
			if id := params[CommunityIDParam]; id != "" {
				return id, true
			}
		}
	}
	return "", false
}

func errNotAdmin() error {
	return &apperrors.DomainError{
		Code:       apperrors.CodeForbidden,
		Message:    "community admin required",
		HTTPStatus: http.StatusForbidden,
		Err:        ErrForbidden,
	}
}
