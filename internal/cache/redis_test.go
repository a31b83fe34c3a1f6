// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupMiniRedis creates a test Redis server using miniredis.
func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisBackend) {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, newRedisBackend(client, "")
}

func TestRedisBackend_KeyLayout(t *testing.T) {
	mr, b := setupMiniRedis(t)
	defer mr.Close()
	defer func() { _ = b.Close() }()

	ctx := context.Background()
	require.NoError(t, b.ReplaceSummaries(ctx, sampleSummaries()))
	require.NoError(t, b.ReplaceDetail(ctx, sampleDetail()))

	assert.True(t, mr.Exists("recipebox:cache:summaries"))
	assert.True(t, mr.Exists("recipebox:cache:detail"))

	raw, err := mr.Get("recipebox:cache:detail")
	require.NoError(t, err)
	assert.Contains(t, raw, `"strIngredient1":"Plain Flour"`)
}

func TestRedisBackend_CustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	b := newRedisBackend(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	defer func() { _ = b.Close() }()

	require.NoError(t, b.ReplaceSummaries(context.Background(), sampleSummaries()))
	assert.True(t, mr.Exists("test:summaries"))
}

func TestNewRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)

	b, err := NewRedisBackend(context.Background(), RedisConfig{Addr: mr.Addr()}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, b.HealthCheck(context.Background()))
	require.NoError(t, b.Close())
}

func TestNewRedisBackend_Unreachable(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisBackend(context.Background(), RedisConfig{Addr: addr}, zerolog.Nop())
	assert.ErrorContains(t, err, "redis connection failed")
}

func TestRedisBackend_ServerGoneSurfacesErrors(t *testing.T) {
	mr, b := setupMiniRedis(t)
	defer func() { _ = b.Close() }()
	mr.Close()

	_, err := b.Summaries(context.Background())
	assert.Error(t, err)
	assert.Error(t, b.ReplaceDetail(context.Background(), sampleDetail()))
}
