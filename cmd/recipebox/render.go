// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ManuGH/recipebox/internal/orchestrator"
	"github.com/ManuGH/recipebox/internal/recipe"
)

// renderer prints orchestrator snapshots. Loaders publish from their own
// goroutines, so writes are serialised.
type renderer struct {
	mu  sync.Mutex
	out io.Writer
}

func newRenderer(out io.Writer) *renderer {
	return &renderer{out: out}
}

func (r *renderer) list(s orchestrator.ListSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case s.Phase == orchestrator.PhaseLoading && s.Interim:
		_, _ = fmt.Fprintf(r.out, "%s (cached, refreshing)\n", s.Category)
		writeSummaries(r.out, s.Recipes)
	case s.Phase == orchestrator.PhaseLoading:
		_, _ = fmt.Fprintf(r.out, "Loading %s...\n", s.Category)
	case s.Phase == orchestrator.PhaseSuccess:
		_, _ = fmt.Fprintf(r.out, "%s (%d recipes)\n", s.Category, len(s.Recipes))
		writeSummaries(r.out, s.Recipes)
	case s.Phase == orchestrator.PhaseError:
		_, _ = fmt.Fprintf(r.out, "error: %s\n", s.ErrorMessage)
	}
}

func (r *renderer) detail(s orchestrator.DetailSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch {
	case s.Phase == orchestrator.PhaseLoading && s.Interim && s.Detail != nil:
		_, _ = fmt.Fprintln(r.out, "(cached, refreshing)")
		writeDetail(r.out, *s.Detail)
	case s.Phase == orchestrator.PhaseLoading:
		_, _ = fmt.Fprintf(r.out, "Loading recipe %s...\n", s.RecipeID)
	case s.Phase == orchestrator.PhaseSuccess && s.Detail != nil:
		writeDetail(r.out, *s.Detail)
	case s.Phase == orchestrator.PhaseError:
		_, _ = fmt.Fprintf(r.out, "error: %s\n", s.ErrorMessage)
	}
}

func writeSummaries(w io.Writer, list []recipe.Summary) {
	width := 0
	for _, s := range list {
		width = max(width, len(s.ID))
	}
	for _, s := range list {
		_, _ = fmt.Fprintf(w, "  %-*s  %s\n", width, s.ID, s.Name)
	}
}

func writeDetail(w io.Writer, d recipe.Detail) {
	_, _ = fmt.Fprintf(w, "%s [%s]\n", d.Name, d.ID)
	if d.ThumbnailURL != "" {
		_, _ = fmt.Fprintf(w, "%s\n", d.ThumbnailURL)
	}
	_, _ = fmt.Fprintln(w, "\nIngredients:")
	for _, item := range d.LineItems() {
		if item.Measurement == "" {
			_, _ = fmt.Fprintf(w, "  - %s\n", item.Ingredient)
			continue
		}
		_, _ = fmt.Fprintf(w, "  - %s %s\n", item.Measurement, item.Ingredient)
	}
	_, _ = fmt.Fprintln(w, "\nInstructions:")
	_, _ = fmt.Fprintln(w, strings.TrimSpace(d.Instructions))
}
