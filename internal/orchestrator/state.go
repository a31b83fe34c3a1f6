// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package orchestrator

import (
	"sync"

	"github.com/ManuGH/recipebox/internal/recipe"
)

// Phase is the lifecycle of a loader: idle, then loading, then success or error.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// ListSnapshot is the observable state of a ListLoader.
type ListSnapshot struct {
	Phase        Phase
	Category     string
	Recipes      []recipe.Summary
	ErrorMessage string // empty when no error is shown
	Interim      bool   // Recipes came from the cache and a fetch is in flight
}

// Loading reports whether a load is in progress.
func (s ListSnapshot) Loading() bool { return s.Phase == PhaseLoading }

func (s ListSnapshot) clone() ListSnapshot {
	s.Recipes = append([]recipe.Summary(nil), s.Recipes...)
	return s
}

// DetailSnapshot is the observable state of a DetailLoader.
type DetailSnapshot struct {
	Phase        Phase
	RecipeID     string
	Detail       *recipe.Detail
	ErrorMessage string
	Interim      bool
}

// Loading reports whether a load is in progress.
func (s DetailSnapshot) Loading() bool { return s.Phase == PhaseLoading }

func (s DetailSnapshot) clone() DetailSnapshot {
	if s.Detail != nil {
		d := *s.Detail
		d.Ingredients = append([]string(nil), d.Ingredients...)
		d.Measurements = append([]string(nil), d.Measurements...)
		s.Detail = &d
	}
	return s
}

type cloner[S any] interface {
	clone() S
}

// state guards a snapshot. After close every update is rejected.
type state[S cloner[S]] struct {
	mu     sync.Mutex
	snap   S
	closed bool
	nextID int
	subs   map[int]func(S)
}

func newState[S cloner[S]]() *state[S] {
	return &state[S]{subs: make(map[int]func(S))}
}

func (s *state[S]) get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.clone()
}

// update applies fn and notifies subscribers. It reports false, without
// calling fn, once the state is closed.
func (s *state[S]) update(fn func(*S)) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	fn(&s.snap)
	snap := s.snap
	subs := make([]func(S), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snap.clone())
	}
	return true
}

func (s *state[S]) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *state[S]) subscribe(fn func(S)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *state[S]) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.subs = make(map[int]func(S))
}
