package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TokenPurger deletes one-time tokens that can no longer be redeemed.
type TokenPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// RunTokenCleanup purges stale one-time tokens every interval until ctx is
// done.
func RunTokenCleanup(ctx context.Context, purger TokenPurger, interval time.Duration, logger *zap.Logger) {
	if purger == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := purger.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("one-time token cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Info("one-time tokens purged", zap.Int64("count", removed))
			}
		}
	}
}
