// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/recipebox/internal/cache"
	"github.com/ManuGH/recipebox/internal/mealdb"
	"github.com/ManuGH/recipebox/internal/validate"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	loader := NewLoader("", "test-version")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Version != "test-version" {
		t.Errorf("expected Version=test-version, got %s", cfg.Version)
	}
	if cfg.DefaultCategory != "Dessert" {
		t.Errorf("expected DefaultCategory=Dessert, got %s", cfg.DefaultCategory)
	}
	if cfg.API.BaseURL != mealdb.DefaultBaseURL {
		t.Errorf("expected BaseURL=%s, got %s", mealdb.DefaultBaseURL, cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("expected Timeout=15s, got %v", cfg.API.Timeout)
	}
	if cfg.Cache.Backend != cache.BackendSQLite {
		t.Errorf("expected sqlite backend, got %s", cfg.Cache.Backend)
	}
	if !cfg.InterimCache {
		t.Error("expected InterimCache enabled by default")
	}
	if cfg.Telemetry.Enabled {
		t.Error("expected telemetry disabled by default")
	}
}

func TestLoadFromYAML(t *testing.T) {
	cacheDir := t.TempDir()
	path := writeConfig(t, "config.yaml", `
logLevel: debug
defaultCategory: Seafood
interimCache: false
metricsAddr: 127.0.0.1:9464
api:
  baseUrl: http://meals.local/api/json/v1/1
  timeout: 3s
  rateLimit: 2.5
  rateBurst: 4
  userAgent: recipebox-test
cache:
  backend: badger
  path: `+cacheDir+`
telemetry:
  enabled: true
  exporter: http
  endpoint: otel.local:4318
  samplingRate: 0.25
`)

	cfg, err := NewLoader(path, "1.0.0").Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("expected LogLevel=debug, got %s", cfg.LogLevel)
	}
	if cfg.DefaultCategory != "Seafood" {
		t.Errorf("expected DefaultCategory=Seafood, got %s", cfg.DefaultCategory)
	}
	if cfg.InterimCache {
		t.Error("expected InterimCache=false from file")
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("expected MetricsAddr, got %s", cfg.MetricsAddr)
	}
	if cfg.API.BaseURL != "http://meals.local/api/json/v1/1" {
		t.Errorf("unexpected BaseURL %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("expected Timeout=3s, got %v", cfg.API.Timeout)
	}
	if cfg.API.RateLimit != 2.5 || cfg.API.RateBurst != 4 {
		t.Errorf("unexpected rate settings %v/%d", cfg.API.RateLimit, cfg.API.RateBurst)
	}
	if cfg.API.UserAgent != "recipebox-test" {
		t.Errorf("unexpected UserAgent %s", cfg.API.UserAgent)
	}
	if cfg.Cache.Backend != cache.BackendBadger || cfg.Cache.Path != cacheDir {
		t.Errorf("unexpected cache config %+v", cfg.Cache)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Exporter != "http" || cfg.Telemetry.SamplingRate != 0.25 {
		t.Errorf("unexpected telemetry config %+v", cfg.Telemetry)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "config.yml", `
defaultCategory: Seafood
cache:
  backend: memory
`)
	t.Setenv(EnvDefaultCategory, "Beef")
	t.Setenv(EnvAPITimeout, "7s")
	t.Setenv(EnvInterimCache, "no")

	loader := NewLoader(path, "test")
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DefaultCategory != "Beef" {
		t.Errorf("expected env to win, got %s", cfg.DefaultCategory)
	}
	if cfg.API.Timeout != 7*time.Second {
		t.Errorf("expected Timeout=7s, got %v", cfg.API.Timeout)
	}
	if cfg.InterimCache {
		t.Error("expected InterimCache=false from env")
	}
	if cfg.Cache.Backend != cache.BackendMemory {
		t.Errorf("expected file value to survive, got %s", cfg.Cache.Backend)
	}
	if _, ok := loader.ConsumedEnvKeys[EnvDefaultCategory]; !ok {
		t.Errorf("expected %s to be recorded as consumed", EnvDefaultCategory)
	}
}

func TestFileExpandsEnv(t *testing.T) {
	t.Setenv("RECIPEBOX_TEST_REDIS_HOST", "cache.internal")
	path := writeConfig(t, "config.yaml", `
cache:
  backend: redis
  redis:
    addr: ${RECIPEBOX_TEST_REDIS_HOST}:6380
    db: 2
`)
	cfg, err := NewLoader(path, "test").Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Cache.Redis.Addr != "cache.internal:6380" {
		t.Errorf("expected expanded addr, got %s", cfg.Cache.Redis.Addr)
	}
	if cfg.Cache.Redis.DB != 2 {
		t.Errorf("expected DB=2, got %d", cfg.Cache.Redis.DB)
	}
}

func TestLoadFileStrict(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "unknown field",
			file:    "config.yaml",
			content: "defaultCategory: Beef\nbogus: true\n",
			wantErr: "strict config parse error",
		},
		{
			name:    "multiple documents",
			file:    "config.yaml",
			content: "defaultCategory: Beef\n---\ndefaultCategory: Pork\n",
			wantErr: "multiple documents",
		},
		{
			name:    "unsupported extension",
			file:    "config.json",
			content: "{}",
			wantErr: "only YAML supported",
		},
		{
			name:    "bad duration",
			file:    "config.yaml",
			content: "api:\n  timeout: soon\n",
			wantErr: "api.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			_, err := NewLoader(path, "test").Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeConfig(t, "config.yaml", "")
	cfg, err := NewLoader(path, "test").Load()
	if err != nil {
		t.Fatalf("empty file should load defaults: %v", err)
	}
	if cfg.DefaultCategory != "Dessert" {
		t.Errorf("expected default category, got %s", cfg.DefaultCategory)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml"), "test").Load()
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		field  string
	}{
		{"bad scheme", func(c *AppConfig) { c.API.BaseURL = "ftp://meals.local" }, "api.baseUrl"},
		{"zero timeout", func(c *AppConfig) { c.API.Timeout = 0 }, "api.timeout"},
		{"zero rate", func(c *AppConfig) { c.API.RateLimit = 0 }, "api.rateLimit"},
		{"zero burst", func(c *AppConfig) { c.API.RateBurst = 0 }, "api.rateBurst"},
		{"unknown backend", func(c *AppConfig) { c.Cache.Backend = "etcd" }, "cache.backend"},
		{"disk backend without path", func(c *AppConfig) { c.Cache.Path = "" }, "cache.path"},
		{"redis db out of range", func(c *AppConfig) {
			c.Cache.Backend = cache.BackendRedis
			c.Cache.Redis.DB = 16
		}, "cache.redis.db"},
		{"bad log level", func(c *AppConfig) { c.LogLevel = "trace" }, "logLevel"},
		{"empty category", func(c *AppConfig) { c.DefaultCategory = " " }, "defaultCategory"},
		{"bad metrics addr", func(c *AppConfig) { c.MetricsAddr = "localhost" }, "metricsAddr"},
		{"bad exporter", func(c *AppConfig) {
			c.Telemetry.Enabled = true
			c.Telemetry.Exporter = "zipkin"
		}, "telemetry.exporter"},
		{"sampling rate above one", func(c *AppConfig) {
			c.Telemetry.Enabled = true
			c.Telemetry.SamplingRate = 1.5
		}, "telemetry.samplingRate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr validate.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, e := range verr.Errors() {
				if e.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateMemoryBackendNeedsNoPath(t *testing.T) {
	cfg := Defaults()
	cfg.Cache.Backend = cache.BackendMemory
	cfg.Cache.Path = ""
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedactedAndCacheOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Cache.Backend = cache.BackendRedis
	cfg.Cache.Redis.Password = "hunter2"
	cfg.Cache.Redis.DB = 3

	if got := cfg.Redacted().Cache.Redis.Password; got != "***" {
		t.Errorf("expected redacted password, got %q", got)
	}
	if cfg.Cache.Redis.Password != "hunter2" {
		t.Error("Redacted must not modify the receiver")
	}

	opts := cfg.CacheOptions()
	if opts.Backend != cache.BackendRedis || opts.Redis.DB != 3 || opts.Redis.Password != "hunter2" {
		t.Errorf("unexpected cache options %+v", opts)
	}
}
