// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"sync"
	"sync/atomic"

	xglog "github.com/ManuGH/recipebox/internal/log"
	"github.com/ManuGH/recipebox/internal/recipe"
	"github.com/rs/zerolog"
)

// Logical row names, used in logs and metrics.
const (
	RowSummary = "cached_summary"
	RowDetail  = "cached_detail"
)

// Stats holds cache counters since the Store was created.
type Stats struct {
	Hits   int64 // reads that returned data
	Misses int64 // reads that returned nothing
	Writes int64 // successful replaces
	Errors int64 // backend failures, read or write
}

// Store is the cache service handed to the orchestrators. Backend failures
// are logged and swallowed: reads degrade to an empty value and writes are
// dropped. Replaces of the same row are serialised; the last writer wins.
type Store struct {
	backend Backend
	logger  zerolog.Logger

	summaryMu sync.Mutex
	detailMu  sync.Mutex

	hits   atomic.Int64
	misses atomic.Int64
	writes atomic.Int64
	errors atomic.Int64
}

// NewStore wraps backend.
func NewStore(backend Backend, logger zerolog.Logger) *Store {
	return &Store{
		backend: backend,
		logger:  logger.With().Str(xglog.FieldBackend, backend.Name()).Logger(),
	}
}

// Backend returns the wrapped backend name.
func (s *Store) Backend() string {
	return s.backend.Name()
}

// ReplaceSummaries clears the summary row and stores list.
func (s *Store) ReplaceSummaries(ctx context.Context, list []recipe.Summary) {
	s.summaryMu.Lock()
	defer s.summaryMu.Unlock()

	if err := s.backend.ReplaceSummaries(ctx, list); err != nil {
		s.fail(ctx, RowSummary, "cache.replace.failed", err)
		return
	}
	s.record(RowSummary, resultWrite)
	s.loggerFor(ctx).Debug().
		Str(xglog.FieldEvent, "cache.replace").
		Str(xglog.FieldRow, RowSummary).
		Int(xglog.FieldCount, len(list)).
		Msg("cached recipe summaries")
}

// Summaries returns the cached list, or an empty list on a miss or failure.
func (s *Store) Summaries(ctx context.Context) []recipe.Summary {
	list, err := s.backend.Summaries(ctx)
	if err != nil {
		s.fail(ctx, RowSummary, "cache.read.failed", err)
		return []recipe.Summary{}
	}
	if len(list) == 0 {
		s.record(RowSummary, resultMiss)
		return []recipe.Summary{}
	}
	s.record(RowSummary, resultHit)
	return list
}

// ReplaceDetail clears the detail row and stores d.
func (s *Store) ReplaceDetail(ctx context.Context, d recipe.Detail) {
	s.detailMu.Lock()
	defer s.detailMu.Unlock()

	if err := s.backend.ReplaceDetail(ctx, d); err != nil {
		s.fail(ctx, RowDetail, "cache.replace.failed", err)
		return
	}
	s.record(RowDetail, resultWrite)
	s.loggerFor(ctx).Debug().
		Str(xglog.FieldEvent, "cache.replace").
		Str(xglog.FieldRow, RowDetail).
		Str(xglog.FieldRecipeID, d.ID).
		Msg("cached recipe detail")
}

// Detail returns the cached detail when its ID equals id. An empty id
// matches any cached detail.
func (s *Store) Detail(ctx context.Context, id string) (recipe.Detail, bool) {
	d, ok, err := s.backend.Detail(ctx)
	if err != nil {
		s.fail(ctx, RowDetail, "cache.read.failed", err)
		return recipe.Detail{}, false
	}
	if !ok || (id != "" && d.ID != id) {
		s.record(RowDetail, resultMiss)
		return recipe.Detail{}, false
	}
	s.record(RowDetail, resultHit)
	return d, true
}

// Stats returns a snapshot of the counters.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
		Writes: s.writes.Load(),
		Errors: s.errors.Load(),
	}
}

// healthChecker is implemented by backends that can probe their connection.
type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Ping probes the backend. Backends without a probe always succeed.
func (s *Store) Ping(ctx context.Context) error {
	if hc, ok := s.backend.(healthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) loggerFor(ctx context.Context) *zerolog.Logger {
	l := xglog.WithContext(ctx, s.logger)
	return &l
}

func (s *Store) fail(ctx context.Context, row, event string, err error) {
	s.record(row, resultError)
	s.loggerFor(ctx).Warn().
		Err(err).
		Str(xglog.FieldEvent, event).
		Str(xglog.FieldRow, row).
		Msg("cache backend failure ignored")
}

func (s *Store) record(row, result string) {
	switch result {
	case resultHit:
		s.hits.Add(1)
	case resultMiss:
		s.misses.Add(1)
	case resultWrite:
		s.writes.Add(1)
	case resultError:
		s.errors.Add(1)
	}
	cacheOperations.WithLabelValues(s.backend.Name(), row, result).Inc()
}
