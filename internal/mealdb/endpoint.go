// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package mealdb

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the public TheMealDB v1 API using the test key.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// Endpoints builds request URLs against a base.
type Endpoints struct {
	Base string
}

// NewEndpoints trims trailing slashes from base; an empty base selects DefaultBaseURL.
func NewEndpoints(base string) Endpoints {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return Endpoints{Base: base}
}

// RecipesList is the filter-by-category URL.
func (e Endpoints) RecipesList(category string) string {
	return e.Base + "/filter.php?" + url.Values{"c": {category}}.Encode()
}

// RecipeDetails is the lookup-by-id URL.
func (e Endpoints) RecipeDetails(id string) string {
	return e.Base + "/lookup.php?" + url.Values{"i": {id}}.Encode()
}
