// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package cache keeps the most recent recipe list and recipe detail so they
// can be shown before, or instead of, a fresh fetch.
//
// Two logical rows exist: the summary list (cached_summary) and a single
// detail (cached_detail). They are unrelated and replaced independently.
// Every replace clears the row first; nothing is merged or appended.
package cache

import (
	"context"

	"github.com/ManuGH/recipebox/internal/recipe"
)

// Backend persists the two cache rows. Implementations report every failure;
// Store decides what to do with it.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// ReplaceSummaries deletes all cached summaries, then stores list in order.
	ReplaceSummaries(ctx context.Context, list []recipe.Summary) error
	// Summaries returns the cached list in stored order, or an empty list.
	Summaries(ctx context.Context) ([]recipe.Summary, error)
	// ReplaceDetail deletes the cached detail, then stores d.
	ReplaceDetail(ctx context.Context, d recipe.Detail) error
	// Detail returns the cached detail; ok is false when none is stored.
	Detail(ctx context.Context) (d recipe.Detail, ok bool, err error)
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendFile   = "file"
)

// Backends lists every supported backend name.
func Backends() []string {
	return []string{BackendMemory, BackendSQLite, BackendBadger, BackendRedis, BackendFile}
}

func cloneSummaries(list []recipe.Summary) []recipe.Summary {
	out := make([]recipe.Summary, len(list))
	copy(out, list)
	return out
}

func cloneDetail(d recipe.Detail) recipe.Detail {
	d.Ingredients = append([]string{}, d.Ingredients...)
	d.Measurements = append([]string{}, d.Measurements...)
	return d
}
