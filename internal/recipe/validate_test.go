// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSummary(t *testing.T) {
	tests := []struct {
		name string
		in   Summary
		want bool
	}{
		{"complete", Summary{ID: "1", Name: "Pasta", ThumbnailURL: "https://example.com/pasta.jpg"}, true},
		{"missing id", Summary{Name: "Pasta", ThumbnailURL: "x"}, false},
		{"missing name", Summary{ID: "2", ThumbnailURL: "https:"}, false},
		{"missing thumbnail", Summary{ID: "3", Name: "Pizza"}, false},
		{"empty", Summary{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidSummary(tt.in))
		})
	}
}

func TestValidDetail(t *testing.T) {
	ok := Detail{ID: "1", Name: "N", Instructions: "I", Ingredients: []string{"x"}, Measurements: []string{"1"}}
	assert.True(t, ValidDetail(ok))

	noThumb := ok
	noThumb.ThumbnailURL = ""
	assert.True(t, ValidDetail(noThumb), "thumbnail is not part of the predicate")

	for name, mutate := range map[string]func(*Detail){
		"id":           func(d *Detail) { d.ID = "" },
		"name":         func(d *Detail) { d.Name = "" },
		"instructions": func(d *Detail) { d.Instructions = "" },
		"ingredients":  func(d *Detail) { d.Ingredients = nil },
	} {
		t.Run("missing "+name, func(t *testing.T) {
			d := ok
			mutate(&d)
			assert.False(t, ValidDetail(d))
		})
	}
}

func TestFilterValid_KeepsOrder(t *testing.T) {
	in := []Summary{
		{ID: "1", Name: "B", ThumbnailURL: "b"},
		{ID: "", Name: "", ThumbnailURL: ""},
		{ID: "3", Name: "A", ThumbnailURL: "a"},
	}
	got := FilterValid(in)
	assert.Equal(t, []Summary{in[0], in[2]}, got)
}

func TestSortByName_Stable(t *testing.T) {
	in := []Summary{
		{ID: "1", Name: "Tart"},
		{ID: "2", Name: "Apple"},
		{ID: "3", Name: "Tart"},
		{ID: "4", Name: "apple"},
	}
	got := SortByName(in)
	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"2", "1", "3", "4"}, ids)
	assert.Equal(t, "1", in[0].ID, "input must not be reordered")
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "Dessert", NormalizeCategory(""))
	assert.Equal(t, "Seafood", NormalizeCategory("  seafood "))
	assert.Equal(t, "Beef", NormalizeCategory("Beef"))
}
