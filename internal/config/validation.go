// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"github.com/ManuGH/recipebox/internal/cache"
	"github.com/ManuGH/recipebox/internal/validate"
)

// Validate checks cfg and reports every problem at once.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.OneOf("logLevel", cfg.LogLevel, validate.LogLevels)
	v.NotEmpty("defaultCategory", cfg.DefaultCategory)
	v.ListenAddr("metricsAddr", cfg.MetricsAddr)

	api := v.Section("api")
	api.URL("baseUrl", cfg.API.BaseURL, []string{"http", "https"})
	api.PositiveDuration("timeout", cfg.API.Timeout)
	api.PositiveFloat("rateLimit", cfg.API.RateLimit)
	api.Positive("rateBurst", cfg.API.RateBurst)

	c := v.Section("cache")
	c.OneOf("backend", cfg.Cache.Backend, cache.Backends())
	switch cfg.Cache.Backend {
	case cache.BackendSQLite, cache.BackendBadger, cache.BackendFile:
		c.NotEmpty("path", cfg.Cache.Path)
	case cache.BackendRedis:
		redis := c.Section("redis")
		redis.NotEmpty("addr", cfg.Cache.Redis.Addr)
		redis.Range("db", cfg.Cache.Redis.DB, 0, 15)
	}

	if cfg.Telemetry.Enabled {
		tel := v.Section("telemetry")
		tel.OneOf("exporter", cfg.Telemetry.Exporter, []string{"grpc", "http"})
		tel.NotEmpty("endpoint", cfg.Telemetry.Endpoint)
		tel.FloatRange("samplingRate", cfg.Telemetry.SamplingRate, 0, 1)
	}

	return v.Err()
}
