package utils

import (
	"context"
	"fmt"
	"time"

	DB "Backend-Parsamooz/src/database"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()

// ensureClient returns the shared Redis client managed by the database
// package. Callers handle the nil (Redis-less development) case.
func ensureClient() *redis.Client {
	return DB.RedisClient
}

// StoreRefreshToken keeps a refresh token in Redis with an expiration. A
// missing Redis is treated as development mode and skipped.
func StoreRefreshToken(username, refreshToken string, expiresIn time.Duration) error {
	client := ensureClient()
	if client == nil {
		return nil
	}

	key := fmt.Sprintf("refresh_token:%s", username)
	if err := client.Set(Ctx, key, refreshToken, expiresIn).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %v", err)
	}
	return nil
}

// ValidateRefreshToken checks the stored token for a user. Without Redis the
// check is skipped and allowed.
func ValidateRefreshToken(username, refreshToken string) (bool, error) {
	client := ensureClient()
	if client == nil {
		return true, nil
	}

	key := fmt.Sprintf("refresh_token:%s", username)
	stored, err := client.Get(Ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get refresh token: %v", err)
	}
	return stored == refreshToken, nil
}

// DeleteRefreshToken removes a user's refresh token (logout).
func DeleteRefreshToken(username string) error {
	client := ensureClient()
	if client == nil {
		return nil
	}

	key := fmt.Sprintf("refresh_token:%s", username)
	if err := client.Del(Ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %v", err)
	}
	return nil
}
