// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command recipebox browses TheMealDB from the terminal with a local cache.
//
//	recipebox [flags] list [category]
//	recipebox [flags] show <id>
//	recipebox [flags] browse [category] <id>
//	recipebox [flags] cache verify [-full]
//	recipebox [flags] cache show
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/recipebox/internal/config"
	xglog "github.com/ManuGH/recipebox/internal/log"
	"github.com/ManuGH/recipebox/internal/orchestrator"
	"github.com/rs/zerolog"
)

var (
	version   = "v0.1.0"
	commit    = "none"
	buildDate = "unknown"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cliFlags struct {
	configPath  string
	logLevel    string
	category    string
	metricsAddr string
	backend     string
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (cliFlags, []string, error) {
	var f cliFlags
	fs := flag.NewFlagSet("recipebox", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "path to config file (YAML)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.category, "category", "", "category used when none is given")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "listen address of the debug server (empty disables it)")
	fs.StringVar(&f.backend, "backend", "", "cache backend (memory, sqlite, badger, redis, file)")
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "usage: recipebox [flags] list [category] | show <id> | browse [category] <id> | cache verify [-full] | cache show")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return f, nil, err
	}
	return f, fs.Args(), nil
}

// applyFlags lets command-line flags override the loaded configuration.
func applyFlags(cfg *config.AppConfig, f cliFlags) {
	if f.logLevel != "" {
		cfg.LogLevel = strings.ToLower(f.logLevel)
	}
	if f.category != "" {
		cfg.DefaultCategory = f.category
	}
	if f.metricsAddr != "" {
		cfg.MetricsAddr = f.metricsAddr
	}
	if f.backend != "" {
		cfg.Cache.Backend = strings.ToLower(f.backend)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.showVersion {
		_, _ = fmt.Fprintf(stdout, "%s (commit: %s, built: %s)\n", version, commit, buildDate)
		return exitOK
	}

	xglog.Configure(xglog.Config{
		Level:   "info",
		Output:  zerolog.SyncWriter(stderr),
		Service: "recipebox",
		Version: version,
	})
	logger := xglog.WithComponent("cli")

	cfg, err := config.NewLoader(strings.TrimSpace(flags.configPath), version).Load()
	if err == nil {
		applyFlags(&cfg, flags)
		err = config.Validate(cfg)
	}
	if err != nil {
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "config.load_failed").
			Str("config_path", flags.configPath).
			Msg("failed to load configuration")
		_, _ = fmt.Fprintf(stderr, "recipebox: %v\n", err)
		return exitError
	}
	xglog.SetLevel(cfg.LogLevel)
	logger.Debug().
		Str(xglog.FieldEvent, "config.loaded").
		Interface("config", cfg.Redacted()).
		Msg("configuration loaded")

	if err := dispatch(ctx, cfg, rest, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "recipebox: %s\n", errorText(err))
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

// errorText prefers the user-facing message of a load failure.
func errorText(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var parts []string
		for _, e := range joined.Unwrap() {
			parts = append(parts, errorText(e))
		}
		return strings.Join(parts, "; ")
	}
	var loadErr *orchestrator.Error
	if errors.As(err, &loadErr) {
		return loadErr.Message()
	}
	return err.Error()
}

func dispatch(ctx context.Context, cfg config.AppConfig, args []string, stdout io.Writer) error {
	cmd := "list"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "list":
		if len(args) > 1 {
			return fmt.Errorf("%w: list takes at most one category", errUsage)
		}
		category := cfg.DefaultCategory
		if len(args) == 1 {
			category = args[0]
		}
		return withApp(ctx, cfg, stdout, func(a *app) error {
			return a.list(ctx, category)
		})
	case "show":
		if len(args) != 1 {
			return fmt.Errorf("%w: show requires exactly one recipe id", errUsage)
		}
		return withApp(ctx, cfg, stdout, func(a *app) error {
			return a.show(ctx, args[0])
		})
	case "browse":
		category, id := cfg.DefaultCategory, ""
		switch len(args) {
		case 1:
			id = args[0]
		case 2:
			category, id = args[0], args[1]
		default:
			return fmt.Errorf("%w: browse requires [category] <id>", errUsage)
		}
		return withApp(ctx, cfg, stdout, func(a *app) error {
			return a.browse(ctx, category, id)
		})
	case "cache":
		return runCacheCommand(ctx, cfg, args, stdout)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}
