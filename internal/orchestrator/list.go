// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package orchestrator

import (
	"context"

	"github.com/ManuGH/recipebox/internal/mealdb"
	"github.com/ManuGH/recipebox/internal/recipe"
)

// ListLoader loads the recipe summaries of a category.
type ListLoader struct {
	*loader
	state *state[ListSnapshot]
}

// NewListLoader returns an idle loader.
func NewListLoader(opts Options) *ListLoader {
	return &ListLoader{
		loader: newLoader(loaderList, opts),
		state:  newState[ListSnapshot](),
	}
}

// Load runs the pipeline for category (an empty category selects
// recipe.DefaultCategory). The returned error is nil or an *Error that is
// also reflected in the snapshot. Previously shown recipes are kept on
// failure.
func (l *ListLoader) Load(ctx context.Context, category string) error {
	category = recipe.NormalizeCategory(category)
	ctx, r := l.begin(ctx, category, "")

	if !l.state.update(func(s *ListSnapshot) {
		s.Phase = PhaseLoading
		s.Category = category
	}) {
		return l.fail(r, deallocated())
	}

	if l.interimEnabled() {
		if cached := recipe.SortByName(recipe.FilterValid(l.opts.Cache.Summaries(ctx))); len(cached) > 0 {
			if l.state.update(func(s *ListSnapshot) {
				s.Recipes = cached
				s.Interim = true
			}) {
				r.interim(len(cached))
			}
		}
	}

	list, err := mealdb.ListByCategory(ctx, l.opts.Fetcher, l.opts.Endpoints, category)
	if err != nil {
		return l.fail(r, Classify(err))
	}

	valid := recipe.FilterValid(list)
	if len(valid) == 0 {
		return l.fail(r, newError(KindNoValidRecipes, nil))
	}
	sorted := recipe.SortByName(valid)

	if !l.state.update(func(s *ListSnapshot) {
		s.Phase = PhaseSuccess
		s.Recipes = sorted
		s.ErrorMessage = ""
		s.Interim = false
	}) {
		return l.fail(r, deallocated())
	}

	l.persist(l.state.isClosed, func() {
		l.opts.Cache.ReplaceSummaries(ctx, sorted)
	})
	r.done(nil)
	return nil
}

// fail publishes e unless the loader is closed, in which case the load
// reports ViewModelDeallocated.
func (l *ListLoader) fail(r *run, e *Error) error {
	if e.Kind != KindViewModelDeallocated && !l.state.update(func(s *ListSnapshot) {
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
func (l *ListLoader) Snapshot() ListSnapshot {
	return l.state.get()
}

// OnChange registers fn to receive every new snapshot. The returned func
// unregisters it.
func (l *ListLoader) OnChange(fn func(ListSnapshot)) func() {
	return l.state.subscribe(fn)
}

// Close tears the loader down. In-flight loads stop mutating state and
// writing the cache, and report ViewModelDeallocated.
func (l *ListLoader) Close() {
	l.shutdown(l.state.close)
}
