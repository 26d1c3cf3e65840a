// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/profile-forge/internal/processor"
)

const (
	keyPrefix  = "profile-forge:parsed:"
	defaultTTL = 24 * time.Hour
)

// ResultCache caches parsed records keyed by a hash of the cleaned text,
// so the same document uploaded twice does not pay for a second round of
// completion calls. A nil *ResultCache is valid and does nothing.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache wraps a Redis client. A nil client yields a nil cache,
// which every method tolerates.
func NewResultCache(client *redis.Client) *ResultCache {
	if client == nil {
		return nil
	}
	return &ResultCache{client: client, ttl: defaultTTL}
}

// Key derives the cache key for a cleaned text
func Key(cleanedText string) string {
	sum := sha256.Sum256([]byte(cleanedText))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached record for the text, or nil on miss or error.
// Cache errors are logged and swallowed; the pipeline works without it.
func (c *ResultCache) Get(ctx context.Context, cleanedText string) *processor.ProfileRecord {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, Key(cleanedText)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("ResultCache.Get: %v", err)
		}
		return nil
	}

	var record processor.ProfileRecord
	if err := json.Unmarshal(data, &record); err != nil {
		log.Printf("ResultCache.Get: corrupt cache entry: %v", err)
		return nil
	}
	return &record
}

// Set stores a parsed record
func (c *ResultCache) Set(ctx context.Context, cleanedText string, record *processor.ProfileRecord) {
	if c == nil || record == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, Key(cleanedText), data, c.ttl).Err(); err != nil {
		log.Printf("ResultCache.Set: %v", err)
	}
}
