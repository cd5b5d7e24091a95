package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/roster-resolve/internal/infrastructure/config"
	"github.com/ersonp/roster-resolve/internal/infrastructure/relationaldb/sqlite"
)

// InitHandler handles project initialization.
type InitHandler struct{}

// NewInitHandler creates a new init handler.
func NewInitHandler() *InitHandler {
	return &InitHandler{}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	DatabasePath string
}

// Handle writes the default config and creates the database schema.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("roster already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbPath := cfg.SQLitePath(basePath)
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		DatabasePath: dbPath,
	}, nil
}
