// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package orchestrator

import (
	"context"
	"strings"

	xglog "github.com/ManuGH/recipebox/internal/log"
	"github.com/ManuGH/recipebox/internal/mealdb"
	"github.com/ManuGH/recipebox/internal/recipe"
)

// DetailLoader loads one recipe detail.
type DetailLoader struct {
	*loader
	state *state[DetailSnapshot]
}

// NewDetailLoader returns an idle loader.
func NewDetailLoader(opts Options) *DetailLoader {
	return &DetailLoader{
		loader: newLoader(loaderDetail, opts),
		state:  newState[DetailSnapshot](),
	}
}

// Load runs the pipeline for id. An empty id fails with RecipeNotFound
// without a fetch. An empty lookup result is a network error.
//
// The fetched detail is published and cached even when it fails
// recipe.ValidDetail; only the interim read applies the predicate.
func (l *DetailLoader) Load(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	ctx, r := l.begin(ctx, "", id)

	if !l.state.update(func(s *DetailSnapshot) {
		s.Phase = PhaseLoading
		s.RecipeID = id
	}) {
		return l.fail(r, deallocated())
	}

	if id == "" {
		return l.fail(r, newError(KindRecipeNotFound, nil))
	}

	if l.interimEnabled() {
		if cached, ok := l.opts.Cache.Detail(ctx, id); ok && recipe.ValidDetail(cached) {
			if l.state.update(func(s *DetailSnapshot) {
				s.Detail = &cached
				s.Interim = true
			}) {
				r.interim(len(cached.Ingredients))
			}
		}
	}

	detail, err := mealdb.LookupDetail(ctx, l.opts.Fetcher, l.opts.Endpoints, id)
	if err != nil {
		return l.fail(r, Classify(err))
	}

	published := detail
	if !l.state.update(func(s *DetailSnapshot) {
		s.Phase = PhaseSuccess
		s.Detail = &published
		s.ErrorMessage = ""
		s.Interim = false
	}) {
		return l.fail(r, deallocated())
	}

	if !recipe.ValidDetail(detail) {
		r.logger.Warn().
			Str(xglog.FieldEvent, "orchestrator.detail.invalid_cached").
			Msg("caching detail that fails validation")
	}
	l.persist(l.state.isClosed, func() {
		l.opts.Cache.ReplaceDetail(ctx, detail)
	})
	r.done(nil)
	return nil
}

func (l *DetailLoader) fail(r *run, e *Error) error {
	if e.Kind != KindViewModelDeallocated && !l.state.update(func(s *DetailSnapshot) {
		s.Phase = PhaseError
		s.ErrorMessage = e.Message()
		s.Interim = false
	}) {
		e = deallocated()
	}
	r.done(e)
	return e
}

// Snapshot returns a copy of the current state.
func (l *DetailLoader) Snapshot() DetailSnapshot {
	return l.state.get()
}

// OnChange registers fn to receive every new snapshot.
func (l *DetailLoader) OnChange(fn func(DetailSnapshot)) func() {
	return l.state.subscribe(fn)
}

// Close tears the loader down; see ListLoader.Close.
func (l *DetailLoader) Close() {
	l.shutdown(l.state.close)
}
