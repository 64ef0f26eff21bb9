// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

// Package cache stores JSON-encoded values in Redis with a TTL.
//
// A cache miss and a cache failure look the same to callers that only want
// speed: both return found=false, and the failure is returned alongside so it
// can be logged without failing the request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// JSONCache reads and writes JSON documents under string keys.
type JSONCache struct {
	client *redis.Client
}

// NewJSONCache wraps a connected Redis client.
func NewJSONCache(client *redis.Client) *JSONCache {
	return &JSONCache{client: client}
}

/*
Get loads the document stored under key into target.

Returns:
  - bool: true when a value was found and decoded
  - error: connectivity or decoding failures (a plain miss is not an error)
*/
func (cache *JSONCache) Get(context context.Context, key string, target any) (bool, error) {
	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache_get_failed: %w", err)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return false, fmt.Errorf("cache_decode_failed: %w", err)
	}

	return true, nil
}

// Set stores value under key for ttl.
func (cache *JSONCache) Set(context context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache_set_failed: %w", err)
	}

	return nil
}

// Delete removes the given keys. Missing keys are ignored.
func (cache *JSONCache) Delete(context context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("cache_delete_failed: %w", err)
	}
	return nil
}
