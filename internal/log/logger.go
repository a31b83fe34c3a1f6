// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config describes the process logger.
type Config struct {
	Level   string    // empty keeps info
	Output  io.Writer // nil means os.Stderr
	Service string
	Version string
}

var (
	mu         sync.RWMutex
	base       zerolog.Logger
	configured bool
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

// Configure replaces the process logger. Loggers derived earlier keep their
// old writer.
func Configure(cfg Config) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil && cfg.Level != "" {
		level = parsed
	}
	zerolog.SetGlobalLevel(level)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	lctx := zerolog.New(out).With().Timestamp()
	if cfg.Service != "" {
		lctx = lctx.Str("service", cfg.Service)
	}
	if cfg.Version != "" {
		lctx = lctx.Str("version", cfg.Version)
	}

	mu.Lock()
	base = lctx.Logger()
	configured = true
	mu.Unlock()
}

// SetLevel changes the global level. Unknown names are ignored.
func SetLevel(level string) {
	if parsed, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(parsed)
	}
}

// Base returns the process logger, configuring a stderr default on first use.
func Base() zerolog.Logger {
	mu.RLock()
	l, ok := base, configured
	mu.RUnlock()
	if ok {
		return l
	}
	Configure(Config{Service: "recipebox"})
	return Base()
}

// WithComponent returns a child logger tagged with component.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}
