// Copyright (c) 2026 Staffdesk. All rights reserved.
// Author: quang.nguyendinh.dev@gmail.com

package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndquang/staffdesk/internal/platform/constants"
)

// RedisStore implements [Store] using Redis key expiry as the TTL mechanism.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed revocation [Store].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Revoke denylists a token ID. The key carries the token's remaining
// lifetime so Redis reclaims it the moment the token would have expired
// anyway.
func (store *RedisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	key := constants.RedisPrefixRevokedToken + jti

	if err := store.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoke_token_failed: %w", err)
	}

	return nil
}

// IsRevoked reports whether a token ID is currently denylisted.
//
// Connectivity errors are returned to the caller, which fails closed.
func (store *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	key := constants.RedisPrefixRevokedToken + jti

	_, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_revocation_check_failed: %w", err)
	}

	return true, nil
}
