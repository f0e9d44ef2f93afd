package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/homegrid/community-service/internal/config"
	"github.com/homegrid/community-service/internal/domain"
	"github.com/homegrid/community-service/internal/repository"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

// ErrOneTimeTokenInvalid is returned for unknown, used, expired or
// mismatched-type tokens alike.
var ErrOneTimeTokenInvalid = errors.New("one-time token invalid")

// OneTimeTokenService issues and redeems single-use tokens.
type OneTimeTokenService struct {
	repo repository.OneTimeTokenRepository
	ttls map[domain.OneTimeTokenType]time.Duration
	now  func() time.Time
}

// NewOneTimeTokenService builds the service with per-type lifetimes from cfg.
func NewOneTimeTokenService(repo repository.OneTimeTokenRepository, cfg config.AuthConfig) *OneTimeTokenService {
	return &OneTimeTokenService{
		repo: repo,
		ttls: map[domain.OneTimeTokenType]time.Duration{
			domain.OneTimeTokenReset:   cfg.PasswordResetTTL(),
			domain.OneTimeTokenConfirm: cfg.EmailConfirmTTL(),
		},
		now: time.Now,
	}
}

// Issue persists a fresh token of tokenType for ownerID.
func (s *OneTimeTokenService) Issue(ctx context.Context, ownerID string, tokenType domain.OneTimeTokenType) (*domain.OneTimeToken, error) {
	ttl, ok := s.ttls[tokenType]
	if !ok || ttl <= 0 {
		return nil, fmt.Errorf("no lifetime configured for %s tokens", tokenType)
	}

	token := &domain.OneTimeToken{
		Token:     uuid.NewString(),
		Type:      tokenType,
		OwnerID:   ownerID,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.repo.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Redeem consumes token. At most one call succeeds per token, and never after
// it expired.
func (s *OneTimeTokenService) Redeem(ctx context.Context, token string, tokenType domain.OneTimeTokenType) (*domain.OneTimeToken, error) {
	if token == "" {
		return nil, invalidOneTimeToken()
	}
	consumed, err := s.repo.Consume(ctx, token, tokenType, s.now())
	if errors.Is(err, domain.ErrNotFound) {
		return nil, invalidOneTimeToken()
	}
	if err != nil {
		return nil, err
	}
	return consumed, nil
}

// PurgeExpired removes tokens that can no longer be redeemed.
func (s *OneTimeTokenService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpired(ctx, s.now())
}

func invalidOneTimeToken() error {
	return &apperrors.DomainError{
		Code:       "TOKEN_INVALID",
		Message:    "token is invalid or expired",
		HTTPStatus: http.StatusBadRequest,
		Err:        ErrOneTimeTokenInvalid,
	}
}
