// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package telemetry

import "go.opentelemetry.io/otel/attribute"

// Span attribute keys shared by the API client and the loaders.
const (
	HTTPMethodKey     = attribute.Key("http.method")
	HTTPStatusCodeKey = attribute.Key("http.status_code")
	HTTPRouteKey      = attribute.Key("http.route")
	HTTPURLKey        = attribute.Key("http.url")

	RecipeCategoryKey = attribute.Key("recipe.category")
	RecipeIDKey       = attribute.Key("recipe.id")
	RecipeCountKey    = attribute.Key("recipe.count")
	RecipeInterimKey  = attribute.Key("recipe.interim")

	ErrorKey     = attribute.Key("error")
	ErrorTypeKey = attribute.Key("error.type")
)

// HTTPAttributes describes one upstream request. route is the endpoint path,
// url the query-stripped label.
func HTTPAttributes(method, route, url string, statusCode int) []attribute.KeyValue {
	return []attribute.KeyValue{
		HTTPMethodKey.String(method),
		HTTPRouteKey.String(route),
		HTTPURLKey.String(url),
		HTTPStatusCodeKey.Int(statusCode),
	}
}

// LoadAttributes describes one loader run. Empty category or id is omitted.
func LoadAttributes(category, recipeID string, interim bool) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if category != "" {
		attrs = append(attrs, RecipeCategoryKey.String(category))
	}
	if recipeID != "" {
		attrs = append(attrs, RecipeIDKey.String(recipeID))
	}
	return append(attrs, RecipeInterimKey.Bool(interim))
}

// ErrorAttributes tags a span with the failure kind.
func ErrorAttributes(kind string) []attribute.KeyValue {
	return []attribute.KeyValue{ErrorKey.Bool(true), ErrorTypeKey.String(kind)}
}
