// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"

	"github.com/ManuGH/recipebox/internal/mealdb"
	"github.com/ManuGH/recipebox/internal/recipe"
)

// Kind tags a load failure.
type Kind int

const (
	KindNetwork Kind = iota
	KindDecoding
	KindRecipeNotFound
	KindInvalidRecipeData
	KindNoValidRecipes
	KindViewModelDeallocated
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network_error"
	case KindDecoding:
		return "decoding_error"
	case KindRecipeNotFound:
		return "recipe_not_found"
	case KindInvalidRecipeData:
		return "invalid_recipe_data"
	case KindNoValidRecipes:
		return "no_valid_recipes"
	case KindViewModelDeallocated:
		return "view_model_deallocated"
	default:
		return "unknown_error"
	}
}

// Message is the user-facing text for k. cause is only rendered by the
// network, decoding and unknown kinds.
func (k Kind) Message(cause error) string {
	switch k {
	case KindViewModelDeallocated:
		return "An unexpected error occurred. Please try again."
	case KindRecipeNotFound:
		return "Recipe not found."
	case KindInvalidRecipeData:
		return "Invalid recipe data received."
	case KindNoValidRecipes:
		return "No valid recipes found for this category."
	case KindNetwork:
		return "Network error: " + describe(cause)
	case KindDecoding:
		return "Failed to process data: " + describe(cause)
	default:
		return "An unexpected error occurred: " + describe(cause)
	}
}

func describe(err error) string {
	if err == nil {
		return "unknown cause"
	}
	return err.Error()
}

// Error is a classified load failure.
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Message is the user-facing text.
func (e *Error) Message() string { return e.Kind.Message(e.Err) }

// Classify maps any error onto a *Error; an existing *Error is returned
// unchanged. Cancellation is Unknown, then network and decoding causes are
// tried in that order.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	switch {
	case errors.Is(err, context.Canceled):
		return newError(KindUnknown, err)
	case isNetwork(err):
		return newError(KindNetwork, err)
	case isDecoding(err):
		return newError(KindDecoding, err)
	default:
		return newError(KindUnknown, err)
	}
}

func isNetwork(err error) bool {
	if errors.Is(err, mealdb.ErrUpstreamUnavailable) ||
		errors.Is(err, mealdb.ErrBadServerResponse) ||
		errors.Is(err, mealdb.ErrTimeout) {
		return true
	}
	if errors.Is(err, mealdb.ErrDecode) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func isDecoding(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	return errors.Is(err, mealdb.ErrDecode) ||
		errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, recipe.ErrMissingField) ||
		errors.Is(err, recipe.ErrInvalidValue)
}
