package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/homegrid/community-service/internal/domain"
)

func TestUserRepository_FindCredentialByIdentifier(t *testing.T) {
	pool := requirePool(t)
	users := NewUserRepository(pool)
	ctx := context.Background()
	user := createTestUser(t, users)

	byEmail, err := users.FindCredentialByIdentifier(ctx, strings.ToUpper(user.Email))
	require.NoError(t, err)
	require.Equal(t, user.ID, byEmail.PrincipalID)

	byName, err := users.FindCredentialByIdentifier(ctx, user.Username)
	require.NoError(t, err)
	require.Equal(t, user.ID, byName.PrincipalID)

	_, err = users.FindCredentialByIdentifier(ctx, "nobody"+uuid.NewString()[:8])
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepository_EmailShapedUsernameCannotShadowEmail(t *testing.T) {
	pool := requirePool(t)
	users := NewUserRepository(pool)
	ctx := context.Background()
	victim := createTestUser(t, users)

	err := users.Create(ctx, &domain.User{
		Username:     victim.Email,
		Email:        "attacker" + uuid.NewString()[:8] + "@example.com",
		PasswordHash: "hash",
		Status:       domain.UserStatusActive,
	})
	require.Error(t, err)

	cred, err := users.FindCredentialByIdentifier(ctx, victim.Email)
	require.NoError(t, err)
	require.Equal(t, victim.ID, cred.PrincipalID)
}

func TestUserRepository_CreateConflict(t *testing.T) {
	pool := requirePool(t)
	users := NewUserRepository(pool)
	user := createTestUser(t, users)

	err := users.Create(context.Background(), &domain.User{
		Username:     "other" + uuid.NewString()[:8],
		Email:        strings.ToUpper(user.Email),
		PasswordHash: "hash",
		Status:       domain.UserStatusActive,
	})
	require.ErrorIs(t, err, domain.ErrConflict)
}
