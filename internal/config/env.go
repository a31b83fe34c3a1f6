// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ManuGH/recipebox/internal/log"
)

// Environment keys.
const (
	EnvAPIBaseURL            = "RECIPEBOX_API_BASE_URL"
	EnvAPITimeout            = "RECIPEBOX_API_TIMEOUT"
	EnvAPIRateLimit          = "RECIPEBOX_API_RATE_LIMIT"
	EnvAPIRateBurst          = "RECIPEBOX_API_RATE_BURST"
	EnvAPIUserAgent          = "RECIPEBOX_API_USER_AGENT"
	EnvCacheBackend          = "RECIPEBOX_CACHE_BACKEND"
	EnvCachePath             = "RECIPEBOX_CACHE_PATH"
	EnvRedisAddr             = "RECIPEBOX_REDIS_ADDR"
	EnvRedisPassword         = "RECIPEBOX_REDIS_PASSWORD"
	EnvRedisDB               = "RECIPEBOX_REDIS_DB"
	EnvLogLevel              = "RECIPEBOX_LOG_LEVEL"
	EnvDefaultCategory       = "RECIPEBOX_DEFAULT_CATEGORY"
	EnvInterimCache          = "RECIPEBOX_INTERIM_CACHE"
	EnvMetricsAddr           = "RECIPEBOX_METRICS_ADDR"
	EnvTelemetryEnabled      = "RECIPEBOX_TELEMETRY_ENABLED"
	EnvTelemetryExporter     = "RECIPEBOX_TELEMETRY_EXPORTER"
	EnvTelemetryEndpoint     = "RECIPEBOX_TELEMETRY_ENDPOINT"
	EnvTelemetrySamplingRate = "RECIPEBOX_TELEMETRY_SAMPLING_RATE"
)

// ParseString returns the value of key, or defaultValue when unset or empty.
func ParseString(key, defaultValue string) string {
	return lookup(key, defaultValue, func(s string) (string, error) { return s, nil })
}

// ParseInt falls back to defaultValue when the value is not an integer.
func ParseInt(key string, defaultValue int) int {
	return lookup(key, defaultValue, strconv.Atoi)
}

// ParseDuration expects Go syntax such as "5s" or "250ms".
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	return lookup(key, defaultValue, time.ParseDuration)
}

func ParseFloat(key string, defaultValue float64) float64 {
	return lookup(key, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// ParseBool accepts true/false, 1/0 and yes/no in any case.
func ParseBool(key string, defaultValue bool) bool {
	return lookup(key, defaultValue, func(s string) (bool, error) {
		switch strings.ToLower(s) {
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
		return false, strconv.ErrSyntax
	})
}

func sensitive(key string) bool {
	k := strings.ToLower(key)
	return strings.Contains(k, "password") || strings.Contains(k, "token")
}

// lookup reads key and converts it with parse. Unset, empty and unparsable
// values all yield defaultValue; the last one is logged as a warning.
func lookup[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	logger := log.WithComponent("config").With().Str("key", key).Logger()

	v, err := parse(raw)
	if err != nil {
		ev := logger.Warn().Err(err).Interface("default", defaultValue)
		if !sensitive(key) {
			ev = ev.Str("value", raw)
		}
		ev.Msg("ignoring invalid environment value")
		return defaultValue
	}

	ev := logger.Debug().Str("source", "environment")
	if sensitive(key) {
		ev = ev.Bool("sensitive", true)
	} else {
		ev = ev.Interface("value", v)
	}
	ev.Msg("using environment variable")
	return v
}
