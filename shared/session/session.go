// Package session keeps the server side of logout: revoked token ids live in
// redis until the token would have expired anyway.
package session

//go:generate go run go.uber.org/mock/mockgen -source=./session.go -destination=./mocks/session_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"math"
	"resort/shared"
	"resort/shared/cache"
	"time"
)

const (
	cacheKeyRevoked = "auth:revoked"
	revokedMarker   = "1"
)

type Store interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisStore struct {
	cache cache.RedisCache
}

func New(cache cache.RedisCache) Store {
	return &redisStore{cache: cache}
}

// Revoke is a no-op for tokens that have already expired.
func (s *redisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}

	seconds := int(math.Ceil(ttl.Seconds()))

	if err := s.cache.Save(ctx, shared.BuildCacheKey(cacheKeyRevoked, tokenID), revokedMarker, seconds); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (s *redisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var marker string

	err := s.cache.Get(ctx, shared.BuildCacheKey(cacheKeyRevoked, tokenID), &marker)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, cache.Nil) {
		return false, nil
	}

	return false, fmt.Errorf("failed to check token revocation: %w", err)
}
