// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_ReplacesOutput(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	var first, second bytes.Buffer
	Configure(Config{Output: &first, Service: "recipebox", Version: "v1"})
	l := Base()
	l.Info().Msg("one")
	Configure(Config{Output: &second})
	l = Base()
	l.Info().Msg("two")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(first.Bytes(), &entry))
	assert.Equal(t, "one", entry["message"])
	assert.Equal(t, "recipebox", entry["service"])
	assert.Equal(t, "v1", entry["version"])

	assert.NotContains(t, first.String(), "two")
	assert.Contains(t, second.String(), "two")
	assert.NotContains(t, second.String(), "service")
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { Configure(Config{}) })

	var buf bytes.Buffer
	Configure(Config{Level: "warn", Output: &buf})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	l := Base()
	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	SetLevel("debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	SetLevel("loud")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel(), "unknown level is ignored")
}
