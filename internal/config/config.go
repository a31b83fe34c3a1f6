// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads recipebox settings. Precedence: ENV > YAML file > defaults.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ManuGH/recipebox/internal/cache"
	"github.com/ManuGH/recipebox/internal/mealdb"
	"github.com/ManuGH/recipebox/internal/recipe"
)

// APIConfig configures the meal API client.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second
	RateBurst int
	UserAgent string
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend string
	Path    string
	Redis   RedisConfig
}

// TelemetryConfig configures tracing.
type TelemetryConfig struct {
	Enabled      bool
	Exporter     string // grpc or http
	Endpoint     string
	SamplingRate float64
}

// AppConfig is the effective configuration.
type AppConfig struct {
	Version         string
	LogLevel        string
	DefaultCategory string
	// InterimCache shows cached data while a fetch is in flight. Tests turn
	// it off to observe fetch results alone.
	InterimCache bool
	MetricsAddr  string

	API       APIConfig
	Cache     CacheConfig
	Telemetry TelemetryConfig
}

// CacheOptions converts the cache section for cache.Open.
func (c AppConfig) CacheOptions() cache.Config {
	return cache.Config{
		Backend: c.Cache.Backend,
		Path:    c.Cache.Path,
		Redis: cache.RedisConfig{
			Addr:     c.Cache.Redis.Addr,
			Password: c.Cache.Redis.Password,
			DB:       c.Cache.Redis.DB,
		},
	}
}

// Redacted returns a copy safe to log.
func (c AppConfig) Redacted() AppConfig {
	if c.Cache.Redis.Password != "" {
		c.Cache.Redis.Password = "***"
	}
	return c
}

// FileConfig mirrors the YAML file. Pointers distinguish "unset" from zero.
type FileConfig struct {
	LogLevel        string `yaml:"logLevel,omitempty"`
	DefaultCategory string `yaml:"defaultCategory,omitempty"`
	InterimCache    *bool  `yaml:"interimCache,omitempty"`
	MetricsAddr     string `yaml:"metricsAddr,omitempty"`

	API struct {
		BaseURL   string   `yaml:"baseUrl,omitempty"`
		Timeout   string   `yaml:"timeout,omitempty"`
		RateLimit *float64 `yaml:"rateLimit,omitempty"`
		RateBurst *int     `yaml:"rateBurst,omitempty"`
		UserAgent string   `yaml:"userAgent,omitempty"`
	} `yaml:"api,omitempty"`

	Cache struct {
		Backend string `yaml:"backend,omitempty"`
		Path    string `yaml:"path,omitempty"`
		Redis   struct {
			Addr     string `yaml:"addr,omitempty"`
			Password string `yaml:"password,omitempty"`
			DB       *int   `yaml:"db,omitempty"`
		} `yaml:"redis,omitempty"`
	} `yaml:"cache,omitempty"`

	Telemetry struct {
		Enabled      *bool    `yaml:"enabled,omitempty"`
		Exporter     string   `yaml:"exporter,omitempty"`
		Endpoint     string   `yaml:"endpoint,omitempty"`
		SamplingRate *float64 `yaml:"samplingRate,omitempty"`
	} `yaml:"telemetry,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() AppConfig {
	return AppConfig{
		LogLevel:        "info",
		DefaultCategory: recipe.DefaultCategory,
		InterimCache:    true,
		API: APIConfig{
			BaseURL:   mealdb.DefaultBaseURL,
			Timeout:   15 * time.Second,
			RateLimit: 5,
			RateBurst: 10,
			UserAgent: "recipebox",
		},
		Cache: CacheConfig{
			Backend: cache.BackendSQLite,
			Path:    defaultCachePath(),
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Telemetry: TelemetryConfig{
			Exporter:     "grpc",
			Endpoint:     "localhost:4317",
			SamplingRate: 1.0,
		},
	}
}

func defaultCachePath() string {
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "recipebox")
	}
	return ".recipebox-cache"
}
