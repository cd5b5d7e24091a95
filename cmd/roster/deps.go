package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ersonp/roster-resolve/internal/application/handlers"
	"github.com/ersonp/roster-resolve/internal/domain/matching"
	"github.com/ersonp/roster-resolve/internal/domain/services"
	"github.com/ersonp/roster-resolve/internal/infrastructure/config"
	"github.com/ersonp/roster-resolve/internal/infrastructure/logging"
	"github.com/ersonp/roster-resolve/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	BasePath       string
	Config         *config.Config
	Events         *config.EventsConfig
	Logger         zerolog.Logger
	ResolveHandler *handlers.ResolveHandler
	StaffHandler   *handlers.StaffHandler
	AuditHandler   *handlers.AuditHandler
}

// basePath returns the project directory from --dir or the working directory.
func basePath() (string, error) {
	if projectDir != "" {
		return projectDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// commandContext returns the command's context, or a background one when
// the command was executed without a context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(cmd *cobra.Command, fn func(*Deps) error) error {
	base, err := basePath()
	if err != nil {
		return err
	}

	cfg, err := config.Load(base)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	events, err := config.LoadEvents(base)
	if err != nil {
		return fmt.Errorf("loading events: %w", err)
	}

	logger := logging.New(cfg.Log, cmd.ErrOrStderr())

	relationalDB, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.SQLitePath(base)})
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer relationalDB.Close()

	// Ensure schema exists
	if err := relationalDB.EnsureSchema(commandContext(cmd)); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	resolver, err := matching.NewResolver(cfg.MatchingOptions())
	if err != nil {
		return fmt.Errorf("building resolver: %w", err)
	}

	resolutionService := services.NewResolutionService(resolver, relationalDB, logger)
	staffService := services.NewStaffService(relationalDB, logger)

	return fn(&Deps{
		BasePath:       base,
		Config:         cfg,
		Events:         events,
		Logger:         logger,
		ResolveHandler: handlers.NewResolveHandler(resolutionService),
		StaffHandler:   handlers.NewStaffHandler(staffService),
		AuditHandler:   handlers.NewAuditHandler(relationalDB),
	})
}

// validateFormat checks a --format flag value.
func validateFormat(format string) error {
	if !slices.Contains(validFormats, strings.ToLower(format)) {
		return fmt.Errorf("invalid --format value %q (valid: %s)", format, strings.Join(validFormats, ", "))
	}
	return nil
}
