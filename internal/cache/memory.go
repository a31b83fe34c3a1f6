// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"sync"

	"github.com/ManuGH/recipebox/internal/recipe"
)

// MemoryBackend keeps both rows in process memory.
type MemoryBackend struct {
	mu        sync.RWMutex
	summaries []recipe.Summary
	detail    *recipe.Detail
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Name() string { return BackendMemory }

func (m *MemoryBackend) ReplaceSummaries(_ context.Context, list []recipe.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = cloneSummaries(list)
	return nil
}

func (m *MemoryBackend) Summaries(_ context.Context) ([]recipe.Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneSummaries(m.summaries), nil
}

func (m *MemoryBackend) ReplaceDetail(_ context.Context, d recipe.Detail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := cloneDetail(d)
	m.detail = &c
	return nil
}

func (m *MemoryBackend) Detail(_ context.Context) (recipe.Detail, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.detail == nil {
		return recipe.Detail{}, false, nil
	}
	return cloneDetail(*m.detail), true, nil
}

func (m *MemoryBackend) Close() error { return nil }
