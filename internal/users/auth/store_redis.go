// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edura-app/edura/internal/platform/apperr"
	"github.com/edura-app/edura/internal/platform/constants"
)

// RedisSessionRepository implements SessionRepository using Redis.
//
// Refresh tokens are opaque high-entropy strings mapped to user IDs with a
// TTL, so session expiry is handled entirely by Redis key expiration.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionKey builds the Redis key for a refresh token.
func sessionKey(token string) string {
	return constants.RedisPrefixSession + token
}

/*
Save stores a refresh token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisSessionRepository) Save(context context.Context, token, userID string, ttl time.Duration) error {
	key := sessionKey(token)

	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return nil
}

/*
Resolve retrieves the userID bound to a refresh token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) Resolve(context context.Context, token string) (string, error) {
	key := sessionKey(token)

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session")
		}
		return "", fmt.Errorf("redis_session_resolve_failed: %w", err)
	}

	return userID, nil
}

/*
Delete removes the refresh token from Redis.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Delete(context context.Context, token string) error {
	key := sessionKey(token)

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
