package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	tokenCachePrefix = "idtoken:"
	maxTokenCacheTTL = 5 * time.Minute
)

// CachedVerifier remembers verified principals in Redis so repeated requests
// with the same token skip the identity provider round trip.
type CachedVerifier struct {
	next   TokenVerifier
	redis  *redis.Client
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewCachedVerifier wraps next with a Redis cache. A nil client disables caching.
func NewCachedVerifier(next TokenVerifier, client *redis.Client, logger *zap.SugaredLogger) TokenVerifier {
	if client == nil {
		return next
	}
	return &CachedVerifier{next: next, redis: client, logger: logger, now: time.Now}
}

func (v *CachedVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	key := tokenCacheKey(token)

	raw, err := v.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var principal Principal
		if jsonErr := json.Unmarshal(raw, &principal); jsonErr == nil {
			return &principal, nil
		}
	case !errors.Is(err, redis.Nil):
		v.logger.Warnw("token cache read failed", "error", err)
	}

	principal, err := v.next.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	ttl := maxTokenCacheTTL
	if !principal.ExpiresAt.IsZero() {
		if remaining := principal.ExpiresAt.Sub(v.now()); remaining < ttl {
			ttl = remaining
		}
	}
	if ttl > 0 {
		if payload, jsonErr := json.Marshal(principal); jsonErr == nil {
			if setErr := v.redis.Set(ctx, key, payload, ttl).Err(); setErr != nil {
				v.logger.Warnw("token cache write failed", "error", setErr)
			}
		}
	}

	return principal, nil
}

// tokenCacheKey never stores the raw token
func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return tokenCachePrefix + hex.EncodeToString(sum[:])
}
