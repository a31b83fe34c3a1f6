// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package recipe defines the recipe summary and detail records, their wire
// decoding, and the predicates that decide whether a record is usable.
package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Wire keys used by the meal API.
const (
	keyID           = "idMeal"
	keyName         = "strMeal"
	keyThumbnail    = "strMealThumb"
	keyInstructions = "strInstructions"

	ingredientPrefix  = "strIngredient"
	measurementPrefix = "strMeasure"
)

var (
	// ErrMissingField is returned when a required key is absent or null.
	ErrMissingField = errors.New("recipe: missing required field")
	// ErrInvalidValue is returned when a field holds a non-string value.
	ErrInvalidValue = errors.New("recipe: invalid field value")
)

// FieldError names the offending key of a decoding failure.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Key)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Summary is the list view of a recipe.
type Summary struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	ThumbnailURL string `json:"strMealThumb"`
}

// UnmarshalJSON requires idMeal, strMeal and strMealThumb to be present
// strings. Other keys are ignored whatever their type.
func (s *Summary) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var out Summary
	for _, f := range []struct {
		key string
		dst *string
	}{
		{keyID, &out.ID},
		{keyName, &out.Name},
		{keyThumbnail, &out.ThumbnailURL},
	} {
		v, err := stringValue(f.key, raw[f.key])
		if err != nil {
			return err
		}
		if v == nil {
			return &FieldError{Key: f.key, Err: ErrMissingField}
		}
		*f.dst = *v
	}
	*s = out
	return nil
}

// Detail is a full recipe. Ingredients and Measurements are parallel: entry i
// of each describes one line item.
type Detail struct {
	ID           string
	Name         string
	ThumbnailURL string
	Instructions string
	Ingredients  []string
	Measurements []string
}

// LineItem is one ingredient with its measurement.
type LineItem struct {
	Ingredient  string
	Measurement string
}

// LineItems pairs ingredients with measurements.
func (d Detail) LineItems() []LineItem {
	n := min(len(d.Ingredients), len(d.Measurements))
	out := make([]LineItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, LineItem{Ingredient: d.Ingredients[i], Measurement: d.Measurements[i]})
	}
	return out
}

// UnmarshalJSON decodes the flat lookup payload. The numbered
// strIngredientN/strMeasureN pairs are scanned from 1 upwards until either key
// of a pair is absent or null. Pairs with an empty ingredient are skipped but
// do not end the scan.
func (d *Detail) UnmarshalJSON(b []byte) error {
	fields, err := decodeFlat(b)
	if err != nil {
		return err
	}

	var out Detail
	if out.Name, err = required(fields, keyName); err != nil {
		return err
	}
	if out.Instructions, err = required(fields, keyInstructions); err != nil {
		return err
	}
	if out.ThumbnailURL, err = required(fields, keyThumbnail); err != nil {
		return err
	}
	if out.ID, err = required(fields, keyID); err != nil {
		return err
	}

	out.Ingredients, out.Measurements = scanLineItems(fields)
	*d = out
	return nil
}

// MarshalJSON emits the same flat shape UnmarshalJSON accepts, numbering the
// line items from 1.
func (d Detail) MarshalJSON() ([]byte, error) {
	m := map[string]string{
		keyID:           d.ID,
		keyName:         d.Name,
		keyThumbnail:    d.ThumbnailURL,
		keyInstructions: d.Instructions,
	}
	for i, item := range d.LineItems() {
		idx := strconv.Itoa(i + 1)
		m[ingredientPrefix+idx] = item.Ingredient
		m[measurementPrefix+idx] = item.Measurement
	}
	return json.Marshal(m)
}

func scanLineItems(fields map[string]*string) (ingredients, measurements []string) {
	ingredients = []string{}
	measurements = []string{}
	for i := 1; ; i++ {
		idx := strconv.Itoa(i)
		ingredient := fields[ingredientPrefix+idx]
		measurement := fields[measurementPrefix+idx]
		if ingredient == nil || measurement == nil {
			return ingredients, measurements
		}
		if *ingredient == "" {
			continue
		}
		ingredients = append(ingredients, *ingredient)
		measurements = append(measurements, *measurement)
	}
}

// decodeFlat reads a JSON object whose values are all strings or null.
func decodeFlat(b []byte) (map[string]*string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	fields := make(map[string]*string, len(raw))
	for k, v := range raw {
		s, err := stringValue(k, v)
		if err != nil {
			return nil, err
		}
		fields[k] = s
	}
	return fields, nil
}

// stringValue decodes one raw value. Absent and null both yield nil.
func stringValue(key string, v json.RawMessage) (*string, error) {
	if v == nil || string(v) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return nil, &FieldError{Key: key, Err: ErrInvalidValue}
	}
	return &s, nil
}

func required(fields map[string]*string, key string) (string, error) {
	v := fields[key]
	if v == nil {
		return "", &FieldError{Key: key, Err: ErrMissingField}
	}
	return *v, nil
}
