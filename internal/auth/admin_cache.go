package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const adminCacheKeyPrefix = "community:admins:"

// CachedAdminLister is a read-through redis cache in front of a
// CommunityAdminLister. Redis failures fall back to the source.
type CachedAdminLister struct {
	source CommunityAdminLister
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedAdminLister wraps source. A nil client or non-positive ttl
// disables caching.
func NewCachedAdminLister(source CommunityAdminLister, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedAdminLister {
	return &CachedAdminLister{source: source, client: client, ttl: ttl, logger: logger}
}

func (l *CachedAdminLister) enabled() bool {
	return l.client != nil && l.ttl > 0
}

// ListAdminPrincipalIDs returns the admin ids for communityID.
func (l *CachedAdminLister) ListAdminPrincipalIDs(ctx context.Context, communityID string) ([]string, error) {
	if !l.enabled() {
		return l.source.ListAdminPrincipalIDs(ctx, communityID)
	}

	key := adminCacheKeyPrefix + communityID
	data, err := l.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var ids []string
		if jsonErr := json.Unmarshal(data, &ids); jsonErr == nil {
			return ids, nil
		}
		l.logger.Warn("discarding corrupt admin cache entry", zap.String("community_id", communityID))
	case !errors.Is(err, redis.Nil):
		l.logger.Warn("admin cache read failed", zap.String("community_id", communityID), zap.Error(err))
	}

	ids, err := l.source.ListAdminPrincipalIDs(ctx, communityID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}

	encoded, err := json.Marshal(ids)
	if err == nil {
		err = l.client.Set(ctx, key, encoded, l.ttl).Err()
	}
	if err != nil {
		l.logger.Warn("admin cache write failed", zap.String("community_id", communityID), zap.Error(err))
	}
	return ids, nil
}

// Invalidate drops the cached admin set of communityID.
func (l *CachedAdminLister) Invalidate(ctx context.Context, communityID string) error {
	if !l.enabled() {
		return nil
	}
	return l.client.Del(ctx, adminCacheKeyPrefix+communityID).Err()
}
