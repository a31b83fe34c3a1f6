// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"bytes"
	"testing"

	"github.com/ManuGH/recipebox/internal/orchestrator"
	"github.com/ManuGH/recipebox/internal/recipe"
	"github.com/stretchr/testify/assert"
)

func TestRendererList(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf)
	recipes := []recipe.Summary{
		{ID: "1", Name: "Alpha", ThumbnailURL: "a"},
		{ID: "22", Name: "Beta", ThumbnailURL: "b"},
	}

	r.list(orchestrator.ListSnapshot{Phase: orchestrator.PhaseLoading, Category: "Beef"})
	r.list(orchestrator.ListSnapshot{Phase: orchestrator.PhaseLoading, Category: "Beef", Recipes: recipes, Interim: true})
	r.list(orchestrator.ListSnapshot{Phase: orchestrator.PhaseSuccess, Category: "Beef", Recipes: recipes})
	r.list(orchestrator.ListSnapshot{Phase: orchestrator.PhaseError, ErrorMessage: "Network error: boom"})

	want := "Loading Beef...\n" +
		"Beef (cached, refreshing)\n" +
		"  1   Alpha\n" +
		"  22  Beta\n" +
		"Beef (2 recipes)\n" +
		"  1   Alpha\n" +
		"  22  Beta\n" +
		"error: Network error: boom\n"
	assert.Equal(t, want, buf.String())
}

func TestRendererDetail(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf)
	d := recipe.Detail{
		ID:           "7",
		Name:         "Toast",
		Instructions: "  Toast the bread.\n",
		Ingredients:  []string{"Bread", "Salt"},
		Measurements: []string{"2 slices", ""},
	}

	r.detail(orchestrator.DetailSnapshot{Phase: orchestrator.PhaseIdle})
	r.detail(orchestrator.DetailSnapshot{Phase: orchestrator.PhaseSuccess, RecipeID: "7", Detail: &d})

	want := "Toast [7]\n" +
		"\nIngredients:\n" +
		"  - 2 slices Bread\n" +
		"  - Salt\n" +
		"\nInstructions:\n" +
		"Toast the bread.\n"
	assert.Equal(t, want, buf.String())
}
