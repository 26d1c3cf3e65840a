// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package config

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates a Redis client from the result-cache settings.
// Returns nil without error when no address is configured - caching is
// optional and its absence only disables the cache.
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("NewRedisClient: failed to ping Redis at %s: %v", cfg.Addr, err)
		return nil, err
	}

	log.Printf("NewRedisClient: connected to Redis at %s db=%d", cfg.Addr, cfg.DB)
	return client, nil
}
