// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package mealdb

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/ManuGH/recipebox/internal/recipe"
	"github.com/go-chi/chi/v5"
)

// MockServer is a configurable stand-in for the meal API used by tests.
type MockServer struct {
	*httptest.Server
	mu         sync.RWMutex
	categories map[string][]json.RawMessage
	details    map[string]json.RawMessage
	failures   map[string]int           // status to return per route ("filter", "lookup")
	raw        map[string]string        // verbatim body per route
	delay      map[string]time.Duration // artificial latency per route
	hits       map[string]int
}

// NewMockServer starts a mock with a small Dessert category.
func NewMockServer() *MockServer {
	m := &MockServer{}
	m.Reset()

	r := chi.NewRouter()
	r.Get("/filter.php", m.handleFilter)
	r.Get("/lookup.php", m.handleLookup)
	m.Server = httptest.NewServer(r)
	return m
}

// Endpoints returns endpoints pointing at the mock.
func (m *MockServer) Endpoints() Endpoints {
	return NewEndpoints(m.URL)
}

// Reset restores the default data and clears failures and counters.
func (m *MockServer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = make(map[string][]json.RawMessage)
	m.details = make(map[string]json.RawMessage)
	m.failures = make(map[string]int)
	m.raw = make(map[string]string)
	m.delay = make(map[string]time.Duration)
	m.hits = make(map[string]int)

	desserts := []recipe.Detail{
		{
			ID:           "53049",
			Name:         "Apam balik",
			ThumbnailURL: "https://www.themealdb.com/images/media/meals/adxcbq1619787919.jpg",
			Instructions: "Mix milk, oil and egg together.",
			Ingredients:  []string{"Milk", "Oil", "Eggs"},
			Measurements: []string{"200ml", "60ml", "2"},
		},
		{
			ID:           "52893",
			Name:         "Apple & Blackberry Crumble",
			ThumbnailURL: "https://www.themealdb.com/images/media/meals/xvsurr1511719182.jpg",
			Instructions: "Heat oven to 190C/170C fan/gas 5.",
			Ingredients:  []string{"Plain Flour", "Caster Sugar", "Butter"},
			Measurements: []string{"120g", "60g", "60g"},
		},
		{
			ID:           "52768",
			Name:         "Apple Frangipan Tart",
			ThumbnailURL: "https://www.themealdb.com/images/media/meals/wxywrq1468235067.jpg",
			Instructions: "Preheat the oven to 200C/180C Fan/Gas 6.",
			Ingredients:  []string{"digestive biscuits", "butter"},
			Measurements: []string{"175g/6oz", "75g/3oz"},
		},
	}
	for _, d := range desserts {
		m.addNoLock("Dessert", d)
	}
}

// AddRecipe registers d under category and makes it available to lookup.
func (m *MockServer) AddRecipe(category string, d recipe.Detail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addNoLock(category, d)
}

func (m *MockServer) addNoLock(category string, d recipe.Detail) {
	summary, _ := json.Marshal(recipe.Summary{ID: d.ID, Name: d.Name, ThumbnailURL: d.ThumbnailURL})
	detail, _ := json.Marshal(d)
	m.categories[category] = append(m.categories[category], summary)
	m.details[d.ID] = detail
}

// SetCategoryRaw replaces the meal objects listed for category with raw JSON.
func (m *MockServer) SetCategoryRaw(category string, meals ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := make([]json.RawMessage, 0, len(meals))
	for _, meal := range meals {
		list = append(list, json.RawMessage(meal))
	}
	m.categories[category] = list
}

// SetDetailRaw serves meal as the lookup result for id.
func (m *MockServer) SetDetailRaw(id, meal string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.details[id] = json.RawMessage(meal)
}

// SetRawBody makes route ("filter" or "lookup") answer 200 with body verbatim.
func (m *MockServer) SetRawBody(route, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw[route] = body
}

// SetFailure makes route answer with status until cleared with status 0.
func (m *MockServer) SetFailure(route string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if status == 0 {
		delete(m.failures, route)
		return
	}
	m.failures[route] = status
}

// SetDelay adds latency to every response on route.
func (m *MockServer) SetDelay(route string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay[route] = d
}

// Hits reports how many requests route has received.
func (m *MockServer) Hits(route string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits[route]
}

// intercept applies delay, failure and raw-body overrides. It reports
// whether the response has already been written.
func (m *MockServer) intercept(w http.ResponseWriter, r *http.Request, route string) bool {
	m.mu.Lock()
	m.hits[route]++
	delay := m.delay[route]
	status, failing := m.failures[route]
	body, hasRaw := m.raw[route]
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return true
		}
	}
	if failing {
		http.Error(w, http.StatusText(status), status)
		return true
	}
	if hasRaw {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
		return true
	}
	return false
}

func (m *MockServer) handleFilter(w http.ResponseWriter, r *http.Request) {
	if m.intercept(w, r, "filter") {
		return
	}
	m.mu.RLock()
	meals, ok := m.categories[r.URL.Query().Get("c")]
	m.mu.RUnlock()
	if !ok {
		writeMeals(w, nil)
		return
	}
	writeMeals(w, meals)
}

func (m *MockServer) handleLookup(w http.ResponseWriter, r *http.Request) {
	if m.intercept(w, r, "lookup") {
		return
	}
	m.mu.RLock()
	meal, ok := m.details[r.URL.Query().Get("i")]
	m.mu.RUnlock()
	if !ok {
		writeMeals(w, nil)
		return
	}
	writeMeals(w, []json.RawMessage{meal})
}

// writeMeals writes {"meals": [...]} or {"meals": null} for a nil list.
func writeMeals(w http.ResponseWriter, meals []json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Meals []json.RawMessage `json:"meals"`
	}{Meals: meals})
}
