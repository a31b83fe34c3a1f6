// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ManuGH/recipebox/internal/recipe"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendFactory func(t *testing.T) Backend

func backendFactories() map[string]backendFactory {
	return map[string]backendFactory{
		BackendMemory: func(t *testing.T) Backend {
			return NewMemoryBackend()
		},
		BackendSQLite: func(t *testing.T) Backend {
			b, err := OpenSQLiteBackend(context.Background(), filepath.Join(t.TempDir(), SQLiteFileName))
			require.NoError(t, err)
			return b
		},
		BackendBadger: func(t *testing.T) Backend {
			b, err := OpenBadgerBackend(filepath.Join(t.TempDir(), "badger"))
			require.NoError(t, err)
			return b
		},
		BackendRedis: func(t *testing.T) Backend {
			mr, b := setupMiniRedis(t)
			t.Cleanup(mr.Close)
			return b
		},
		BackendFile: func(t *testing.T) Backend {
			b, err := OpenFileBackend(t.TempDir())
			require.NoError(t, err)
			return b
		},
	}
}

func sampleSummaries() []recipe.Summary {
	return []recipe.Summary{
		{ID: "52768", Name: "Apple Frangipan Tart", ThumbnailURL: "https://img/1.jpg"},
		{ID: "53049", Name: "Apam balik", ThumbnailURL: "https://img/2.jpg"},
		{ID: "52893", Name: "Apple & Blackberry Crumble", ThumbnailURL: "https://img/3.jpg"},
	}
}

func sampleDetail() recipe.Detail {
	return recipe.Detail{
		ID:           "52893",
		Name:         "Apple & Blackberry Crumble",
		ThumbnailURL: "https://img/3.jpg",
		Instructions: "Heat oven to 190C.",
		Ingredients:  []string{"Plain Flour", "Caster Sugar", "Butter"},
		Measurements: []string{"120g", "60g", ""},
	}
}

func TestBackends_Conformance(t *testing.T) {
	for name, factory := range backendFactories() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			b := factory(t)
			defer func() { assert.NoError(t, b.Close()) }()

			assert.Equal(t, name, b.Name())

			t.Run("empty", func(t *testing.T) {
				list, err := b.Summaries(ctx)
				require.NoError(t, err)
				assert.Empty(t, list)

				_, ok, err := b.Detail(ctx)
				require.NoError(t, err)
				assert.False(t, ok)
			})

			t.Run("summaries keep stored order", func(t *testing.T) {
				require.NoError(t, b.ReplaceSummaries(ctx, sampleSummaries()))
				got, err := b.Summaries(ctx)
				require.NoError(t, err)
				if diff := cmp.Diff(sampleSummaries(), got); diff != "" {
					t.Errorf("summaries mismatch (-want +got):\n%s", diff)
				}
			})

			t.Run("replace clears previous rows", func(t *testing.T) {
				next := []recipe.Summary{{ID: "1", Name: "Only", ThumbnailURL: "t"}}
				require.NoError(t, b.ReplaceSummaries(ctx, next))
				got, err := b.Summaries(ctx)
				require.NoError(t, err)
				assert.Equal(t, next, got)

				require.NoError(t, b.ReplaceSummaries(ctx, nil))
				got, err = b.Summaries(ctx)
				require.NoError(t, err)
				assert.Empty(t, got)
			})

			t.Run("detail round trip", func(t *testing.T) {
				want := sampleDetail()
				require.NoError(t, b.ReplaceDetail(ctx, want))
				got, ok, err := b.Detail(ctx)
				require.NoError(t, err)
				require.True(t, ok)
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("detail mismatch (-want +got):\n%s", diff)
				}
			})

			t.Run("detail replace overwrites", func(t *testing.T) {
				next := recipe.Detail{ID: "9", Name: "Soup", ThumbnailURL: "t", Instructions: "Boil."}
				require.NoError(t, b.ReplaceDetail(ctx, next))
				got, ok, err := b.Detail(ctx)
				require.NoError(t, err)
				require.True(t, ok)
				if diff := cmp.Diff(next, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("detail mismatch (-want +got):\n%s", diff)
				}
			})

			t.Run("rows are independent", func(t *testing.T) {
				require.NoError(t, b.ReplaceSummaries(ctx, sampleSummaries()))
				require.NoError(t, b.ReplaceDetail(ctx, sampleDetail()))
				require.NoError(t, b.ReplaceSummaries(ctx, nil))

				_, ok, err := b.Detail(ctx)
				require.NoError(t, err)
				assert.True(t, ok, "clearing summaries must not touch the detail row")
			})
		})
	}
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), SQLiteFileName)

	b, err := OpenSQLiteBackend(ctx, path)
	require.NoError(t, err)
	require.NoError(t, b.ReplaceSummaries(ctx, sampleSummaries()))
	require.NoError(t, b.ReplaceDetail(ctx, sampleDetail()))
	require.NoError(t, b.Close())

	b, err = OpenSQLiteBackend(ctx, path)
	require.NoError(t, err)
	defer func() { _ = b.Close() }()

	got, err := b.Summaries(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleSummaries(), got)

	d, ok, err := b.Detail(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleDetail(), d)
}

func TestFileBackend_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := OpenFileBackend(dir)
	require.NoError(t, err)

	require.NoError(t, writeAtomic(ctx, filepath.Join(dir, summariesFileName), []byte("{not json")))
	_, err = b.Summaries(ctx)
	assert.Error(t, err)
}
