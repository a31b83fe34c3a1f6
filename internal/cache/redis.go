// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	xglog "github.com/ManuGH/recipebox/internal/log"
	"github.com/ManuGH/recipebox/internal/recipe"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string // Redis server address (host:port)
	Password string // Redis password (optional)
	DB       int    // Redis database number
	Prefix   string // key prefix, defaults to "recipebox:cache:"
}

const defaultRedisPrefix = "recipebox:cache:"

// RedisBackend stores each row as one JSON document under its own key.
type RedisBackend struct {
	client       *redis.Client
	summariesKey string
	detailKey    string
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(ctx context.Context, config RedisConfig, logger zerolog.Logger) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     4,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info().
		Str(xglog.FieldBackend, BackendRedis).
		Str("addr", config.Addr).
		Int("db", config.DB).
		Msg("connected to Redis cache")

	return newRedisBackend(client, config.Prefix), nil
}

func newRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisBackend{
		client:       client,
		summariesKey: prefix + "summaries",
		detailKey:    prefix + "detail",
	}
}

func (r *RedisBackend) Name() string { return BackendRedis }

// replace runs DEL then SET inside MULTI/EXEC.
func (r *RedisBackend) replace(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.Set(ctx, key, data, 0)
		return nil
	})
	return err
}

func (r *RedisBackend) ReplaceSummaries(ctx context.Context, list []recipe.Summary) error {
	return r.replace(ctx, r.summariesKey, cloneSummaries(list))
}

func (r *RedisBackend) Summaries(ctx context.Context) ([]recipe.Summary, error) {
	val, err := r.client.Get(ctx, r.summariesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return []recipe.Summary{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := []recipe.Summary{}
	if err := json.Unmarshal(val, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RedisBackend) ReplaceDetail(ctx context.Context, d recipe.Detail) error {
	return r.replace(ctx, r.detailKey, d)
}

func (r *RedisBackend) Detail(ctx context.Context) (recipe.Detail, bool, error) {
	val, err := r.client.Get(ctx, r.detailKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return recipe.Detail{}, false, nil
	}
	if err != nil {
		return recipe.Detail{}, false, err
	}
	var d recipe.Detail
	if err := json.Unmarshal(val, &d); err != nil {
		return recipe.Detail{}, false, err
	}
	return d, true, nil
}

// Close closes the Redis connection.
func (r *RedisBackend) Close() error {
	return r.client.Close()
}

// HealthCheck checks if Redis is available.
func (r *RedisBackend) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
