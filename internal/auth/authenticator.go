package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/homegrid/community-service/internal/domain"
)

// CredentialStore looks up login records. Implementations return
// domain.ErrNotFound when no record matches identifier.
type CredentialStore interface {
	FindCredentialByIdentifier(ctx context.Context, identifier string) (*domain.Credential, error)
}

// Authenticator verifies a login attempt and yields the principal id.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, secret string) (string, error)
}

// CredentialAuthenticator checks secrets against stored password hashes.
type CredentialAuthenticator struct {
	store     CredentialStore
	hasher    PasswordHasher
	dummyHash string
}

// NewCredentialAuthenticator constructs an authenticator.
func NewCredentialAuthenticator(store CredentialStore, hasher PasswordHasher) *CredentialAuthenticator {
	// Unknown identifiers are still verified against this hash so both
	// failure paths cost one hash comparison.
	dummy, _ := hasher.Hash("not-a-real-password")
	return &CredentialAuthenticator{store: store, hasher: hasher, dummyHash: dummy}
}

// Authenticate returns the principal id for identifier when secret matches.
func (a *CredentialAuthenticator) Authenticate(ctx context.Context, identifier, secret string) (string, error) {
	cred, err := a.store.FindCredentialByIdentifier(ctx, identifier)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("%w: find credential: %v", ErrCollaboratorUnavailable, err)
	}
	if cred == nil {
		a.hasher.Verify(secret, a.dummyHash)
		return "", ErrCredentialsIncorrect
	}

	if !a.hasher.Verify(secret, cred.PasswordHash) {
		return "", ErrCredentialsIncorrect
	}
	if cred.Status != domain.UserStatusActive {
		return "", ErrCredentialsIncorrect
	}
	return cred.PrincipalID, nil
}
