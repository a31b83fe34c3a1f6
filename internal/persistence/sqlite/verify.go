// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
)

// VerifyMode selects the integrity pragma.
type VerifyMode string

const (
	VerifyQuick VerifyMode = "quick"
	VerifyFull  VerifyMode = "full"
)

func (m VerifyMode) pragma() string {
	if m == VerifyFull {
		return "PRAGMA integrity_check"
	}
	return "PRAGMA quick_check"
}

// VerifyIntegrity opens path read-only and runs the pragma for mode.
// A healthy file yields (nil, nil); otherwise the diagnostic rows are returned.
func VerifyIntegrity(ctx context.Context, path string, mode VerifyMode) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite: verify: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(path, "mode=ro", "_pragma=busy_timeout(2000)"))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open for verification: %w", err)
	}
	defer func() { _ = db.Close() }()

	issues, err := scanStrings(ctx, db, mode.pragma())
	if err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", mode.pragma(), err)
	}
	switch {
	case len(issues) == 0:
		return []string{"integrity check returned no rows"}, nil
	case len(issues) == 1 && strings.EqualFold(issues[0], "ok"):
		return nil, nil
	default:
		return issues, nil
	}
}

func scanStrings(ctx context.Context, db *sql.DB, query string) ([]string, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
