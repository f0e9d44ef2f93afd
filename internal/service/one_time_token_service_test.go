package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/homegrid/community-service/internal/config"
	"github.com/homegrid/community-service/internal/domain"
)

func newTokenService() (*OneTimeTokenService, *memoryTokenRepo) {
	repo := newMemoryTokenRepo()
	cfg := config.AuthConfig{PasswordResetTTLMinutes: 30, EmailConfirmTTLMinutes: 60}
	return NewOneTimeTokenService(repo, cfg), repo
}

func TestOneTimeTokenService_IssueAndRedeem(t *testing.T) {
	svc, _ := newTokenService()
	ctx := context.Background()

	issued, err := svc.Issue(ctx, "u1", domain.OneTimeTokenReset)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.WithinDuration(t, time.Now().Add(30*time.Minute), issued.ExpiresAt, time.Second)

	redeemed, err := svc.Redeem(ctx, issued.Token, domain.OneTimeTokenReset)
	require.NoError(t, err)
	require.Equal(t, "u1", redeemed.OwnerID)
	require.True(t, redeemed.Used)
}

func TestOneTimeTokenService_RedeemRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("second redemption", func(t *testing.T) {
		svc, _ := newTokenService()
		issued, err := svc.Issue(ctx, "u1", domain.OneTimeTokenConfirm)
		require.NoError(t, err)

		_, err = svc.Redeem(ctx, issued.Token, domain.OneTimeTokenConfirm)
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, issued.Token, domain.OneTimeTokenConfirm)
		require.ErrorIs(t, err, ErrOneTimeTokenInvalid)
	})

	t.Run("expired unused", func(t *testing.T) {
		svc, _ := newTokenService()
		issued, err := svc.Issue(ctx, "u1", domain.OneTimeTokenReset)
		require.NoError(t, err)

		svc.now = func() time.Time { return time.Now().Add(31 * time.Minute) }
		_, err = svc.Redeem(ctx, issued.Token, domain.OneTimeTokenReset)
		require.ErrorIs(t, err, ErrOneTimeTokenInvalid)
	})

	t.Run("wrong type", func(t *testing.T) {
		svc, _ := newTokenService()
		issued, err := svc.Issue(ctx, "u1", domain.OneTimeTokenConfirm)
		require.NoError(t, err)

		_, err = svc.Redeem(ctx, issued.Token, domain.OneTimeTokenReset)
		require.ErrorIs(t, err, ErrOneTimeTokenInvalid)
	})

	t.Run("unknown and empty", func(t *testing.T) {
		svc, _ := newTokenService()
		_, err := svc.Redeem(ctx, "does-not-exist", domain.OneTimeTokenReset)
		require.ErrorIs(t, err, ErrOneTimeTokenInvalid)
		_, err = svc.Redeem(ctx, "", domain.OneTimeTokenReset)
		require.ErrorIs(t, err, ErrOneTimeTokenInvalid)
	})
}

func TestOneTimeTokenService_ConcurrentRedemptionSucceedsOnce(t *testing.T) {
	svc, _ := newTokenService()
	ctx := context.Background()
	issued, err := svc.Issue(ctx, "u1", domain.OneTimeTokenReset)
	require.NoError(t, err)

	const attempts = 32
	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		failures  atomic.Int32
		start     = make(chan struct{})
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if _, err := svc.Redeem(ctx, issued.Token, domain.OneTimeTokenReset); err == nil {
				successes.Add(1)
			} else {
				failures.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int32(1), successes.Load())
	require.Equal(t, int32(attempts-1), failures.Load())
}

func TestOneTimeTokenService_PurgeExpired(t *testing.T) {
	svc, repo := newTokenService()
	ctx := context.Background()

	used, err := svc.Issue(ctx, "u1", domain.OneTimeTokenReset)
	require.NoError(t, err)
	_, err = svc.Redeem(ctx, used.Token, domain.OneTimeTokenReset)
	require.NoError(t, err)
	_, err = svc.Issue(ctx, "u2", domain.OneTimeTokenConfirm)
	require.NoError(t, err)

	removed, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)
	require.Len(t, repo.tokens, 1)
}

func TestOneTimeTokenService_UnconfiguredType(t *testing.T) {
	svc := NewOneTimeTokenService(newMemoryTokenRepo(), config.AuthConfig{})

	_, err := svc.Issue(context.Background(), "u1", domain.OneTimeTokenReset)
	require.Error(t, err)
}
