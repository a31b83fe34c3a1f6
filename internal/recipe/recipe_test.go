// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package recipe

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail_UnmarshalJSON_Valid(t *testing.T) {
	payload := `{
		"strMeal": "Spaghetti",
		"strInstructions": "Cook the pasta",
		"strMealThumb": "https://example.com/spaghetti.jpg",
		"idMeal": "12345",
		"strIngredient1": "Pasta",
		"strIngredient2": "Tomato Sauce",
		"strIngredient3": "",
		"strMeasure1": "500g",
		"strMeasure2": "2 cups",
		"strMeasure3": ""
	}`

	var d Detail
	require.NoError(t, json.Unmarshal([]byte(payload), &d))

	assert.Equal(t, "Spaghetti", d.Name)
	assert.Equal(t, "Cook the pasta", d.Instructions)
	assert.Equal(t, "https://example.com/spaghetti.jpg", d.ThumbnailURL)
	assert.Equal(t, "12345", d.ID)
	assert.Equal(t, []string{"Pasta", "Tomato Sauce"}, d.Ingredients)
	assert.Equal(t, []string{"500g", "2 cups"}, d.Measurements)
}

func TestDetail_UnmarshalJSON_Scan(t *testing.T) {
	base := `"idMeal":"1","strMeal":"M","strInstructions":"I","strMealThumb":"T"`

	tests := []struct {
		name             string
		extra            string
		wantIngredients  []string
		wantMeasurements []string
	}{
		{
			name:             "empty ingredient is skipped and scan continues",
			extra:            `"strIngredient1":"X","strMeasure1":"1cup","strIngredient2":"","strMeasure2":"","strIngredient3":"Y","strMeasure3":"2tbsp"`,
			wantIngredients:  []string{"X", "Y"},
			wantMeasurements: []string{"1cup", "2tbsp"},
		},
		{
			name:             "absent key ends the scan",
			extra:            `"strIngredient1":"X","strMeasure1":"1","strIngredient3":"Y","strMeasure3":"3"`,
			wantIngredients:  []string{"X"},
			wantMeasurements: []string{"1"},
		},
		{
			name:             "null ingredient ends the scan",
			extra:            `"strIngredient1":"X","strMeasure1":"1","strIngredient2":null,"strMeasure2":null,"strIngredient3":"Y","strMeasure3":"3"`,
			wantIngredients:  []string{"X"},
			wantMeasurements: []string{"1"},
		},
		{
			name:             "missing measure ends the scan",
			extra:            `"strIngredient1":"X","strMeasure1":"1","strIngredient2":"Y"`,
			wantIngredients:  []string{"X"},
			wantMeasurements: []string{"1"},
		},
		{
			name:             "empty measurement is kept",
			extra:            `"strIngredient1":"Salt","strMeasure1":""`,
			wantIngredients:  []string{"Salt"},
			wantMeasurements: []string{""},
		},
		{
			name:             "no ingredients",
			extra:            `"strIngredient1":"","strMeasure1":""`,
			wantIngredients:  []string{},
			wantMeasurements: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Detail
			require.NoError(t, json.Unmarshal([]byte("{"+base+","+tt.extra+"}"), &d))
			if diff := cmp.Diff(tt.wantIngredients, d.Ingredients); diff != "" {
				t.Errorf("ingredients mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantMeasurements, d.Measurements); diff != "" {
				t.Errorf("measurements mismatch (-want +got):\n%s", diff)
			}
			assert.Len(t, d.Measurements, len(d.Ingredients))
		})
	}
}

func TestDetail_UnmarshalJSON_MissingRequired(t *testing.T) {
	payload := `{"strMeal":"Spaghetti","strInstructions":"Cook the pasta","idMeal":"12345"}`

	var d Detail
	err := json.Unmarshal([]byte(payload), &d)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "strMealThumb", fe.Key)
}

func TestDetail_UnmarshalJSON_NullRequired(t *testing.T) {
	payload := `{"strMeal":"S","strInstructions":null,"strMealThumb":"T","idMeal":"1"}`

	var d Detail
	err := json.Unmarshal([]byte(payload), &d)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestDetail_UnmarshalJSON_NonStringValue(t *testing.T) {
	payload := `{"strMeal":"S","strInstructions":"I","strMealThumb":"T","idMeal":52772}`

	var d Detail
	err := json.Unmarshal([]byte(payload), &d)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestDetail_JSONRoundTrip(t *testing.T) {
	in := Detail{
		ID:           "52893",
		Name:         "Apple & Blackberry Crumble",
		ThumbnailURL: "https://example.com/crumble.jpg",
		Instructions: "Heat oven.",
		Ingredients:  []string{"A", "B"},
		Measurements: []string{"1", "2"},
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out Detail
	require.NoError(t, json.Unmarshal(b, &out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary_UnmarshalJSON(t *testing.T) {
	var s Summary
	require.NoError(t, json.Unmarshal([]byte(`{"idMeal":"1","strMeal":"Pie","strMealThumb":"t.jpg"}`), &s))
	assert.Equal(t, Summary{ID: "1", Name: "Pie", ThumbnailURL: "t.jpg"}, s)

	err := json.Unmarshal([]byte(`{"idMeal":"1","strMeal":"Pie"}`), &s)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestSummary_UnmarshalJSONIgnoresExtraKeys(t *testing.T) {
	var s Summary
	body := `{"idMeal":"1","strMeal":"Pie","strMealThumb":"t.jpg","rating":4,"tags":{"a":1},"strArea":null}`
	require.NoError(t, json.Unmarshal([]byte(body), &s))
	assert.Equal(t, Summary{ID: "1", Name: "Pie", ThumbnailURL: "t.jpg"}, s)
}

func TestSummary_UnmarshalJSONRequiredKeyTypes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
		key  string
	}{
		{"numeric id", `{"idMeal":1,"strMeal":"Pie","strMealThumb":"t.jpg"}`, ErrInvalidValue, "idMeal"},
		{"null name", `{"idMeal":"1","strMeal":null,"strMealThumb":"t.jpg"}`, ErrMissingField, "strMeal"},
		{"object thumb", `{"idMeal":"1","strMeal":"Pie","strMealThumb":{}}`, ErrInvalidValue, "strMealThumb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Summary
			err := json.Unmarshal([]byte(tt.body), &s)
			require.ErrorIs(t, err, tt.want)
			var fe *FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.key, fe.Key)
		})
	}
}

func TestDetail_LineItems(t *testing.T) {
	d := Detail{Ingredients: []string{"Flour", "Sugar"}, Measurements: []string{"200g", "50g"}}
	assert.Equal(t, []LineItem{{"Flour", "200g"}, {"Sugar", "50g"}}, d.LineItems())
}
