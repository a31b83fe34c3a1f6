// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("cache: unknown backend")

// Config selects and configures a backend.
type Config struct {
	Backend string      // memory, sqlite, badger, redis or file
	Path    string      // cache directory for the disk backends
	Redis   RedisConfig // redis backend only
}

// Open builds the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (Backend, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch name {
	case BackendMemory:
		return NewMemoryBackend(), nil
	case BackendSQLite, "":
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return OpenSQLiteBackend(ctx, SQLitePath(cfg.Path))
	case BackendBadger:
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return OpenBadgerBackend(filepath.Join(cfg.Path, "badger"))
	case BackendRedis:
		return NewRedisBackend(ctx, cfg.Redis, logger)
	case BackendFile:
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
		return OpenFileBackend(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

func ensureDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New("cache: path is required for disk backends")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("cache: create dir: %w", err)
	}
	return nil
}
