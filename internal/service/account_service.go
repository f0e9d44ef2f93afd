package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/homegrid/community-service/internal/auth"
	"github.com/homegrid/community-service/internal/domain"
	"github.com/homegrid/community-service/internal/events"
	"github.com/homegrid/community-service/internal/repository"
	apperrors "github.com/homegrid/community-service/pkg/util/errorutil"
)

const minPasswordLength = 8

// AccountService coordinates registration, password reset and email
// confirmation.
type AccountService struct {
	users      repository.UserRepository
	tokens     *OneTimeTokenService
	hasher     auth.PasswordHasher
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AccountDependencies encapsulates collaborators of the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	Tokens     *OneTimeTokenService
	Hasher     auth.PasswordHasher
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	return &AccountService{
		users:      deps.UserRepo,
		tokens:     deps.Tokens,
		hasher:     deps.Hasher,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Register creates a new account and sends an email confirmation token.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	details := map[string]any{}
	switch {
	case username == "":
		details["username"] = "required"
	case strings.Contains(username, "@"):
		// logins containing "@" are looked up by email only
		details["username"] = "must not contain @"
	}
	if !strings.Contains(email, "@") {
		details["email"] = "must be a valid email address"
	}
	if len(password) < minPasswordLength {
		details["password"] = "must be at least 8 characters"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid registration", details)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperrors.NewConflict("username or email already registered", nil)
		}
		return nil, err
	}

	// The account exists from here on; a missing confirmation token is
	// recovered through ResendEmailConfirmation.
	if err := s.sendEmailConfirmation(ctx, user); err != nil {
		s.logger.Warn("email confirmation not issued", zap.String("principal_id", user.ID), zap.Error(err))
	}
	return user, nil
}

// ResendEmailConfirmation issues a fresh confirmation token when email
// belongs to an unconfirmed account. Other addresses succeed silently.
func (s *AccountService) ResendEmailConfirmation(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if user.EmailConfirmed {
		return nil
	}
	return s.sendEmailConfirmation(ctx, user)
}

func (s *AccountService) sendEmailConfirmation(ctx context.Context, user *domain.User) error {
	token, err := s.tokens.Issue(ctx, user.ID, domain.OneTimeTokenConfirm)
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Email:        user.Email,
		Username:     user.Username,
		ConfirmToken: token.Token,
		ExpiresAt:    token.ExpiresAt,
	})
	return nil
}

// RequestPasswordReset issues a reset token when email belongs to an account.
// Unknown addresses succeed silently.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.Debug("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return err
	}

	token, err := s.tokens.Issue(ctx, user.ID, domain.OneTimeTokenReset)
	if err != nil {
		return err
	}
	s.publish(ctx, events.EventPasswordResetRequested, user.ID, events.PasswordResetRequestedPayload{
		Email:      user.Email,
		ResetToken: token.Token,
		ExpiresAt:  token.ExpiresAt,
	})
	return nil
}

// ResetPassword redeems a reset token and replaces the owner's password.
func (s *AccountService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperrors.NewValidationError("invalid password", map[string]any{
			"new_password": "must be at least 8 characters",
		})
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	token, err := s.tokens.Redeem(ctx, tokenStr, domain.OneTimeTokenReset)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.OwnerID)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info("password reset", zap.String("principal_id", user.ID))
	return nil
}

// ConfirmEmail redeems a confirmation token and marks the owner's email as
// confirmed.
func (s *AccountService) ConfirmEmail(ctx context.Context, tokenStr string) error {
	token, err := s.tokens.Redeem(ctx, tokenStr, domain.OneTimeTokenConfirm)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, token.OwnerID)
	if err != nil {
		return err
	}
	user.EmailConfirmed = true
	return s.users.Update(ctx, user)
}

// Get returns the user with id.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperrors.NewNotFound("user", nil)
	}
	return user, err
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
	if err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
