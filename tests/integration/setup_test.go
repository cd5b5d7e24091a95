package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/roster-resolve/internal/domain/matching"
	"github.com/ersonp/roster-resolve/internal/domain/services"
	"github.com/ersonp/roster-resolve/internal/infrastructure/config"
	"github.com/ersonp/roster-resolve/internal/infrastructure/relationaldb/sqlite"
)

// openRepo opens a schema-ready file database in a temp directory.
func openRepo(t *testing.T) (*sqlite.Repository, string) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "roster.db")
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo, dbPath
}

type stack struct {
	staff      *services.StaffService
	resolution *services.ResolutionService
}

func newStack(t *testing.T, repo *sqlite.Repository) stack {
	t.Helper()
	resolver, err := matching.NewResolver(matching.DefaultOptions())
	require.NoError(t, err)

	return stack{
		staff:      services.NewStaffService(repo, zerolog.Nop()),
		resolution: services.NewResolutionService(resolver, repo, zerolog.Nop()),
	}
}
