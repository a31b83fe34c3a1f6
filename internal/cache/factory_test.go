// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Backends(t *testing.T) {
	mr := miniredis.RunT(t)

	for _, name := range Backends() {
		t.Run(name, func(t *testing.T) {
			cfg := Config{Backend: name, Path: t.TempDir(), Redis: RedisConfig{Addr: mr.Addr()}}
			b, err := Open(context.Background(), cfg, zerolog.Nop())
			require.NoError(t, err)
			assert.Equal(t, name, b.Name())
			require.NoError(t, b.Close())
		})
	}
}

func TestOpen_DefaultsToSQLite(t *testing.T) {
	dir := t.TempDir()
	b, err := Open(context.Background(), Config{Path: dir}, zerolog.Nop())
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	assert.Equal(t, BackendSQLite, b.Name())
	_, err = os.Stat(SQLitePath(dir))
	assert.NoError(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Config{Backend: "etcd"}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_DiskBackendNeedsPath(t *testing.T) {
	_, err := Open(context.Background(), Config{Backend: BackendBadger}, zerolog.Nop())
	assert.ErrorContains(t, err, "path is required")
}
