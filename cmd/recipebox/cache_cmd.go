// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ManuGH/recipebox/internal/cache"
	"github.com/ManuGH/recipebox/internal/config"
	xglog "github.com/ManuGH/recipebox/internal/log"
	"github.com/ManuGH/recipebox/internal/persistence/sqlite"
)

var errCorrupt = errors.New("cache database is corrupt")

func runCacheCommand(ctx context.Context, cfg config.AppConfig, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: cache requires a subcommand (verify, show)", errUsage)
	}
	switch args[0] {
	case "verify":
		return cacheVerify(ctx, cfg, args[1:], stdout)
	case "show":
		if len(args) > 1 {
			return fmt.Errorf("%w: cache show takes no arguments", errUsage)
		}
		return cacheShow(ctx, cfg, stdout)
	default:
		return fmt.Errorf("%w: unknown cache subcommand %q", errUsage, args[0])
	}
}

func cacheVerify(ctx context.Context, cfg config.AppConfig, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("cache verify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	full := fs.Bool("full", false, "run a full integrity check instead of a quick check")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	if cfg.Cache.Backend != cache.BackendSQLite {
		return fmt.Errorf("%w: cache verify supports the sqlite backend only (configured: %s)", errUsage, cfg.Cache.Backend)
	}

	mode := sqlite.VerifyQuick
	if *full {
		mode = sqlite.VerifyFull
	}
	path := cache.SQLitePath(cfg.Cache.Path)

	issues, err := sqlite.VerifyIntegrity(ctx, path, mode)
	if err != nil {
		return err
	}
	logger := xglog.WithComponent("cli")
	if len(issues) > 0 {
		logger.Warn().
			Str(xglog.FieldEvent, "cache.verify.corrupt").
			Str(xglog.FieldPath, path).
			Int(xglog.FieldCount, len(issues)).
			Msg("integrity check reported problems")
		for _, issue := range issues {
			_, _ = fmt.Fprintln(stdout, issue)
		}
		return errCorrupt
	}
	_, _ = fmt.Fprintf(stdout, "%s: ok (%s check)\n", path, mode)
	return nil
}

func cacheShow(ctx context.Context, cfg config.AppConfig, stdout io.Writer) error {
	backend, err := cache.Open(ctx, cfg.CacheOptions(), xglog.WithComponent("cache"))
	if err != nil {
		return err
	}
	store := cache.NewStore(backend, xglog.WithComponent("cache"))
	defer func() { _ = store.Close() }()

	summaries := store.Summaries(ctx)
	_, _ = fmt.Fprintf(stdout, "%s (%d rows)\n", cache.RowSummary, len(summaries))
	writeSummaries(stdout, summaries)

	_, _ = fmt.Fprintf(stdout, "\n%s\n", cache.RowDetail)
	d, ok := store.Detail(ctx, "")
	if !ok {
		_, _ = fmt.Fprintln(stdout, "  (empty)")
		return nil
	}
	var b strings.Builder
	writeDetail(&b, d)
	for _, line := range strings.Split(strings.TrimRight(b.String(), "\n"), "\n") {
		_, _ = fmt.Fprintf(stdout, "  %s\n", line)
	}
	return nil
}
