// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ManuGH/recipebox/internal/recipe"
)

const (
	summariesFileName = "summaries.json"
	detailFileName    = "detail.json"
)

// FileBackend stores each row as a JSON document in a directory. Writes
// replace the whole document atomically.
type FileBackend struct {
	dir string
}

// OpenFileBackend creates dir if needed.
func OpenFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) Name() string { return BackendFile }

func (f *FileBackend) ReplaceSummaries(ctx context.Context, list []recipe.Summary) error {
	data, err := json.Marshal(cloneSummaries(list))
	if err != nil {
		return err
	}
	return writeAtomic(ctx, filepath.Join(f.dir, summariesFileName), data)
}

func (f *FileBackend) Summaries(_ context.Context) ([]recipe.Summary, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, summariesFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return []recipe.Summary{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := []recipe.Summary{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *FileBackend) ReplaceDetail(ctx context.Context, d recipe.Detail) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return writeAtomic(ctx, filepath.Join(f.dir, detailFileName), data)
}

func (f *FileBackend) Detail(_ context.Context) (recipe.Detail, bool, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, detailFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return recipe.Detail{}, false, nil
	}
	if err != nil {
		return recipe.Detail{}, false, err
	}
	var d recipe.Detail
	if err := json.Unmarshal(data, &d); err != nil {
		return recipe.Detail{}, false, err
	}
	return d, true, nil
}

func (f *FileBackend) Close() error { return nil }
