// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package orchestrator runs the fetch-validate-cache pipeline for the recipe
// list and recipe detail, and exposes the outcome as observable state.
//
// A load optionally shows cached data first, then fetches from the meal API,
// validates, publishes and finally replaces the cache. Every failure is
// classified into an *Error and surfaced as an error message; cache
// failures are only logged.
package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/ManuGH/recipebox/internal/cache"
	xglog "github.com/ManuGH/recipebox/internal/log"
	"github.com/ManuGH/recipebox/internal/mealdb"
	"github.com/ManuGH/recipebox/internal/telemetry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Options wires a loader to its collaborators.
type Options struct {
	Fetcher   mealdb.Fetcher
	Endpoints mealdb.Endpoints
	// Cache is optional; nil disables both interim reads and writes.
	Cache *cache.Store
	// InterimCache shows cached data while the fetch is in flight.
	InterimCache bool
	Logger       zerolog.Logger
}

// loader holds what ListLoader and DetailLoader share.
type loader struct {
	opts   Options
	name   string
	logger zerolog.Logger

	// writeMu lets Close wait for in-flight cache writes.
	writeMu sync.RWMutex
}

func newLoader(name string, opts Options) *loader {
	if opts.Endpoints.Base == "" {
		opts.Endpoints = mealdb.NewEndpoints("")
	}
	return &loader{
		opts:   opts,
		name:   name,
		logger: opts.Logger.With().Str(xglog.FieldComponent, name+"_loader").Logger(),
	}
}

func (l *loader) interimEnabled() bool {
	return l.opts.InterimCache && l.opts.Cache != nil
}

// persist runs write unless the loader has been closed.
func (l *loader) persist(closed func() bool, write func()) {
	if l.opts.Cache == nil {
		return
	}
	l.writeMu.RLock()
	defer l.writeMu.RUnlock()
	if closed() {
		return
	}
	write()
}

func (l *loader) shutdown(closeState func()) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	closeState()
}

// run tracks one Load call for logging, tracing and metrics.
type run struct {
	loader string
	start  time.Time
	span   trace.Span
	logger zerolog.Logger
}

func (l *loader) begin(ctx context.Context, category, recipeID string) (context.Context, *run) {
	if xglog.RequestIDFromContext(ctx) == "" {
		ctx = xglog.ContextWithRequestID(ctx, uuid.NewString())
	}
	ctx, span := telemetry.Tracer("recipebox.orchestrator").Start(ctx,
		"recipebox.orchestrator."+l.name+".load",
		trace.WithAttributes(telemetry.LoadAttributes(category, recipeID, l.interimEnabled())...),
	)

	logCtx := xglog.WithContext(ctx, l.logger).With()
	if category != "" {
		logCtx = logCtx.Str(xglog.FieldCategory, category)
	}
	if recipeID != "" {
		logCtx = logCtx.Str(xglog.FieldRecipeID, recipeID)
	}
	r := &run{loader: l.name, start: time.Now(), span: span, logger: logCtx.Logger()}
	r.logger.Debug().Str(xglog.FieldEvent, "orchestrator.load.start").Msg("load started")
	return r.logger.WithContext(ctx), r
}

func (r *run) interim(count int) {
	interimServed.WithLabelValues(r.loader).Inc()
	r.span.AddEvent("interim", trace.WithAttributes(telemetry.RecipeCountKey.Int(count)))
	r.logger.Debug().
		Str(xglog.FieldEvent, "orchestrator.load.interim").
		Int(xglog.FieldCount, count).
		Msg("showing cached data")
}

// done closes the run. err is nil on success.
func (r *run) done(err *Error) {
	defer r.span.End()
	loadDuration.WithLabelValues(r.loader).Observe(time.Since(r.start).Seconds())

	if err == nil {
		loadsTotal.WithLabelValues(r.loader, outcomeSuccess).Inc()
		r.span.SetStatus(codes.Ok, "")
		r.logger.Info().
			Str(xglog.FieldEvent, "orchestrator.load.success").
			Dur("duration", time.Since(r.start)).
			Msg("load completed")
		return
	}

	loadsTotal.WithLabelValues(r.loader, err.Kind.String()).Inc()
	r.span.SetAttributes(telemetry.ErrorAttributes(err.Kind.String())...)
	r.span.RecordError(err)
	r.span.SetStatus(codes.Error, err.Kind.String())

	ev := r.logger.Warn()
	if err.Kind == KindViewModelDeallocated {
		ev = r.logger.Debug()
	}
	ev.Err(err.Err).
		Str(xglog.FieldEvent, "orchestrator.load.failed").
		Str(xglog.FieldKind, err.Kind.String()).
		Msg(err.Message())
}

func deallocated() *Error {
	return newError(KindViewModelDeallocated, nil)
}
