package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"resync/internal/config"
	"resync/internal/gitstate"
	"resync/internal/slogutil"
)

// getRepoRoot resolves the repository root from the current directory.
func getRepoRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return gitstate.GetRepoRoot(cwd)
}

// mustGetRepoRoot returns the repository root or exits on error.
func mustGetRepoRoot() string {
	repoRoot, err := getRepoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return repoRoot
}

// mustLoadConfig loads and validates configuration or exits on error.
func mustLoadConfig(repoRoot string) *config.Config {
	cfg, err := config.LoadConfig(repoRoot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the command logger. CLI verbosity flags override the
// configured level; a configured log file tees records to it alongside
// stderr.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slogutil.LevelFromVerbosity(verbosity, quietFlag)
	if verbosity == 0 && !quietFlag && cfg != nil && cfg.Logging.Level != "" {
		level = slogutil.LevelFromString(cfg.Logging.Level)
	}

	if cfg != nil && cfg.Logging.File != "" {
		fileLogger, _, err := slogutil.NewFileLogger(cfg.Logging.File, level)
		if err == nil {
			return slogutil.NewTeeLogger(
				slogutil.NewHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
				fileLogger.Handler(),
			)
		}
	}

	return slogutil.NewLogger(os.Stderr, level)
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}
