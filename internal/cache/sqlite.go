// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ManuGH/recipebox/internal/persistence/sqlite"
	"github.com/ManuGH/recipebox/internal/recipe"
)

// SQLiteFileName is the database file inside the cache directory.
const SQLiteFileName = "cache.sqlite"

// SQLitePath returns the database path for a cache directory.
func SQLitePath(dir string) string {
	return filepath.Join(dir, SQLiteFileName)
}

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS cached_summary (
		id            TEXT NOT NULL,
		name          TEXT NOT NULL,
		thumbnail_url TEXT NOT NULL,
		position      INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS cached_detail (
		id            TEXT NOT NULL,
		name          TEXT NOT NULL,
		thumbnail_url TEXT NOT NULL,
		instructions  TEXT NOT NULL,
		ingredients   TEXT NOT NULL,
		measurements  TEXT NOT NULL
	);`,
}

// SQLiteBackend stores the rows in the cached_summary and cached_detail tables.
type SQLiteBackend struct {
	db *sql.DB
}

// OpenSQLiteBackend opens (or creates) the database at path and migrates it.
func OpenSQLiteBackend(ctx context.Context, path string) (*SQLiteBackend, error) {
	db, err := sqlite.Open(ctx, path, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := sqlite.Migrate(ctx, db, sqliteMigrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func (s *SQLiteBackend) Name() string { return BackendSQLite }

func (s *SQLiteBackend) ReplaceSummaries(ctx context.Context, list []recipe.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cached_summary`); err != nil {
		return fmt.Errorf("clear cached_summary: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cached_summary (id, name, thumbnail_url, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range list {
		if _, err := stmt.ExecContext(ctx, r.ID, r.Name, r.ThumbnailURL, i); err != nil {
			return fmt.Errorf("insert summary %q: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteBackend) Summaries(ctx context.Context) ([]recipe.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, thumbnail_url FROM cached_summary ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []recipe.Summary{}
	for rows.Next() {
		var r recipe.Summary
		if err := rows.Scan(&r.ID, &r.Name, &r.ThumbnailURL); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteBackend) ReplaceDetail(ctx context.Context, d recipe.Detail) error {
	ingredients, err := json.Marshal(nonNil(d.Ingredients))
	if err != nil {
		return err
	}
	measurements, err := json.Marshal(nonNil(d.Measurements))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cached_detail`); err != nil {
		return fmt.Errorf("clear cached_detail: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO cached_detail (id, name, thumbnail_url, instructions, ingredients, measurements) VALUES (?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.ThumbnailURL, d.Instructions, string(ingredients), string(measurements),
	); err != nil {
		return fmt.Errorf("insert detail %q: %w", d.ID, err)
	}
	return tx.Commit()
}

func (s *SQLiteBackend) Detail(ctx context.Context) (recipe.Detail, bool, error) {
	var (
		d                         recipe.Detail
		ingredients, measurements string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, thumbnail_url, instructions, ingredients, measurements FROM cached_detail LIMIT 1`,
	).Scan(&d.ID, &d.Name, &d.ThumbnailURL, &d.Instructions, &ingredients, &measurements)
	if errors.Is(err, sql.ErrNoRows) {
		return recipe.Detail{}, false, nil
	}
	if err != nil {
		return recipe.Detail{}, false, err
	}
	if err := json.Unmarshal([]byte(ingredients), &d.Ingredients); err != nil {
		return recipe.Detail{}, false, fmt.Errorf("decode ingredients: %w", err)
	}
	if err := json.Unmarshal([]byte(measurements), &d.Measurements); err != nil {
		return recipe.Detail{}, false, fmt.Errorf("decode measurements: %w", err)
	}
	return d, true, nil
}

func (s *SQLiteBackend) Close() error { return s.db.Close() }

// HealthCheck pings the database.
func (s *SQLiteBackend) HealthCheck(ctx context.Context) error { return s.db.PingContext(ctx) }

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
