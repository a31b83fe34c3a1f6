// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ManuGH/recipebox/internal/cache"
	"github.com/ManuGH/recipebox/internal/health"
	xglog "github.com/ManuGH/recipebox/internal/log"
	"github.com/ManuGH/recipebox/internal/orchestrator"
	"github.com/ManuGH/recipebox/internal/recipe"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const (
	debugRequestLimit = 120
	debugWindow       = time.Minute
)

// stateSource is what the debug server reads.
type stateSource interface {
	ListSnapshot() orchestrator.ListSnapshot
	DetailSnapshot() orchestrator.DetailSnapshot
	CacheBackend() string
	CacheStats() cache.Stats
}

func (a *app) ListSnapshot() orchestrator.ListSnapshot     { return a.lists.Snapshot() }
func (a *app) DetailSnapshot() orchestrator.DetailSnapshot { return a.details.Snapshot() }
func (a *app) CacheBackend() string                        { return a.store.Backend() }
func (a *app) CacheStats() cache.Stats                     { return a.store.Stats() }

type listView struct {
	Phase        string           `json:"phase"`
	Category     string           `json:"category"`
	Recipes      []recipe.Summary `json:"recipes"`
	ErrorMessage string           `json:"errorMessage,omitempty"`
	Interim      bool             `json:"interim"`
}

type detailView struct {
	Phase        string         `json:"phase"`
	RecipeID     string         `json:"recipeId"`
	Detail       *recipe.Detail `json:"detail,omitempty"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	Interim      bool           `json:"interim"`
}

type cacheView struct {
	Backend string `json:"backend"`
	Hits    int64  `json:"hits"`
	Misses  int64  `json:"misses"`
	Writes  int64  `json:"writes"`
	Errors  int64  `json:"errors"`
}

type stateView struct {
	List   listView   `json:"list"`
	Detail detailView `json:"detail"`
	Cache  cacheView  `json:"cache"`
}

// newHealthManager registers the cache probe and both loaders.
func newHealthManager(version string, src stateSource, ping func(ctx context.Context) error) *health.Manager {
	hm := health.NewManager(version)
	hm.RegisterChecker(health.NewPingChecker("cache", ping))
	hm.RegisterChecker(health.NewLoaderChecker("list_loader", func() (orchestrator.Phase, string) {
		s := src.ListSnapshot()
		return s.Phase, s.ErrorMessage
	}))
	hm.RegisterChecker(health.NewLoaderChecker("detail_loader", func() (orchestrator.Phase, string) {
		s := src.DetailSnapshot()
		return s.Phase, s.ErrorMessage
	}))
	return hm
}

func newDebugRouter(src stateSource, hm *health.Manager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httprate.Limit(
		debugRequestLimit,
		debugWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(debugWindow.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate_limit_exceeded"}`))
		}),
	))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", hm.ServeHealth)
	r.Get("/readyz", hm.ServeReady)
	r.Get("/state", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, buildStateView(src))
	})
	return r
}

func buildStateView(src stateSource) stateView {
	ls := src.ListSnapshot()
	ds := src.DetailSnapshot()
	stats := src.CacheStats()
	recipes := ls.Recipes
	if recipes == nil {
		recipes = []recipe.Summary{}
	}
	return stateView{
		List: listView{
			Phase:        ls.Phase.String(),
			Category:     ls.Category,
			Recipes:      recipes,
			ErrorMessage: ls.ErrorMessage,
			Interim:      ls.Interim,
		},
		Detail: detailView{
			Phase:        ds.Phase.String(),
			RecipeID:     ds.RecipeID,
			Detail:       ds.Detail,
			ErrorMessage: ds.ErrorMessage,
			Interim:      ds.Interim,
		},
		Cache: cacheView{
			Backend: src.CacheBackend(),
			Hits:    stats.Hits,
			Misses:  stats.Misses,
			Writes:  stats.Writes,
			Errors:  stats.Errors,
		},
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func startDebugServer(addr string, src stateSource, hm *health.Manager, logger zerolog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newDebugRouter(src, hm),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().
			Str(xglog.FieldEvent, "debug.server.start").
			Str("addr", addr).
			Msg("debug server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "debug.server.failed").
				Msg("debug server stopped")
		}
	}()
	return srv
}
