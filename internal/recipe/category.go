// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package recipe

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultCategory is loaded when no category is configured.
const DefaultCategory = "Dessert"

// NormalizeCategory trims and title-cases a category name ("dessert" ->
// "Dessert"). An empty input yields DefaultCategory.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return cases.Title(language.English).String(category)
}
