// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/ManuGH/recipebox/internal/cache"
	"github.com/ManuGH/recipebox/internal/config"
	xglog "github.com/ManuGH/recipebox/internal/log"
	"github.com/ManuGH/recipebox/internal/mealdb"
	"github.com/ManuGH/recipebox/internal/orchestrator"
	"github.com/ManuGH/recipebox/internal/telemetry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// app is the composition root for the load commands.
type app struct {
	cfg    config.AppConfig
	logger zerolog.Logger

	telemetry *telemetry.Provider
	store     *cache.Store
	lists     *orchestrator.ListLoader
	details   *orchestrator.DetailLoader
	debug     *http.Server
	render    *renderer
	unsub     []func()
}

func newApp(ctx context.Context, cfg config.AppConfig, stdout io.Writer) (*app, error) {
	logger := xglog.WithComponent("app")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "recipebox",
		ServiceVersion: cfg.Version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return nil, err
	}

	client := mealdb.NewClient(mealdb.Options{
		Timeout:   cfg.API.Timeout,
		UserAgent: cfg.API.UserAgent,
		RateLimit: rate.Limit(cfg.API.RateLimit),
		RateBurst: cfg.API.RateBurst,
	})

	backend, err := cache.Open(ctx, cfg.CacheOptions(), logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "cache.open.failed").
			Str(xglog.FieldBackend, cfg.Cache.Backend).
			Msg("cache unavailable, continuing with in-memory cache")
		backend = cache.NewMemoryBackend()
	}
	store := cache.NewStore(backend, xglog.WithComponent("cache"))

	opts := orchestrator.Options{
		Fetcher:      client,
		Endpoints:    mealdb.NewEndpoints(cfg.API.BaseURL),
		Cache:        store,
		InterimCache: cfg.InterimCache,
		Logger:       xglog.WithComponent("orchestrator"),
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		telemetry: tp,
		store:     store,
		lists:     orchestrator.NewListLoader(opts),
		details:   orchestrator.NewDetailLoader(opts),
		render:    newRenderer(stdout),
	}
	a.unsub = append(a.unsub,
		a.lists.OnChange(a.render.list),
		a.details.OnChange(a.render.detail),
	)

	if cfg.MetricsAddr != "" {
		hm := newHealthManager(cfg.Version, a, store.Ping)
		a.debug = startDebugServer(cfg.MetricsAddr, a, hm, logger)
	}
	return a, nil
}

// withApp builds an app, runs fn and tears everything down.
func withApp(ctx context.Context, cfg config.AppConfig, stdout io.Writer, fn func(*app) error) error {
	a, err := newApp(ctx, cfg, stdout)
	if err != nil {
		return err
	}
	runErr := fn(a)
	return errors.Join(runErr, a.close())
}

func (a *app) list(ctx context.Context, category string) error {
	return a.lists.Load(ctx, category)
}

func (a *app) show(ctx context.Context, id string) error {
	return a.details.Load(ctx, id)
}

// browse loads a category and a recipe concurrently. Both loads run to
// completion; a failure of one does not cancel the other.
func (a *app) browse(ctx context.Context, category, id string) error {
	ctx = xglog.ContextWithCorrelationID(ctx, uuid.NewString())

	// Wait reports the first failure; every failure is joined for the caller.
	errs := make([]error, 2)
	var g errgroup.Group
	g.Go(func() error {
		errs[0] = a.lists.Load(ctx, category)
		return errs[0]
	})
	g.Go(func() error {
		errs[1] = a.details.Load(ctx, id)
		return errs[1]
	})
	if err := g.Wait(); err == nil {
		return nil
	}
	return errors.Join(errs...)
}

func (a *app) close() error {
	for _, unsub := range a.unsub {
		unsub()
	}
	a.lists.Close()
	a.details.Close()

	var errs []error
	if a.debug != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		errs = append(errs, a.debug.Shutdown(ctx))
		cancel()
	}
	errs = append(errs, a.store.Close())
	errs = append(errs, a.telemetry.Shutdown(context.Background()))

	stats := a.store.Stats()
	a.logger.Debug().
		Str(xglog.FieldEvent, "app.closed").
		Str(xglog.FieldBackend, a.store.Backend()).
		Int64("cache_hits", stats.Hits).
		Int64("cache_misses", stats.Misses).
		Int64("cache_writes", stats.Writes).
		Int64("cache_errors", stats.Errors).
		Msg("shutdown complete")
	return errors.Join(errs...)
}
