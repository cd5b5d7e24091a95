package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/domain/matching"
	"github.com/ersonp/roster-resolve/internal/domain/mocks"
)

func newTestResolver(t *testing.T) *matching.Resolver {
	t.Helper()
	r, err := matching.NewResolver(matching.DefaultOptions())
	require.NoError(t, err)
	return r
}

func seededDB() *mocks.RelationalDB {
	return mocks.NewRelationalDB(
		entities.DirectoryRecord{ID: "s-01", FullName: "Mehmet Akif Şimşek", Active: true},
		entities.DirectoryRecord{ID: "s-02", FullName: "Ahmet Can Fındıcak", Active: true},
		entities.DirectoryRecord{ID: "s-03", FullName: "Ali Gezer", Active: true},
		entities.DirectoryRecord{ID: "s-04", FullName: "ALİ GEZER", Active: true},
		entities.DirectoryRecord{ID: "s-05", FullName: "Ömer İnce", Active: false},
	)
}

func rosterEntries(t *testing.T) []entities.RosterEntry {
	t.Helper()
	start, end, err := entities.ParseShift("16:00-06:00")
	require.NoError(t, err)
	return []entities.RosterEntry{
		{RawName: "M. AKİF ŞİMŞEK", Tables: []string{"106", "107"}, ShiftStart: start, ShiftEnd: end, Line: 2},
		{RawName: "ALİ GEZER", Tables: []string{"28"}, Line: 3},
		{RawName: "ZZZ NONSENSE NAME", Tables: []string{"5"}, Line: 4},
		{RawName: "AHMET CAN FINDICAK", Tables: []string{"38", "39"}, Line: 5},
		{RawName: "ÖMER İNCE", Tables: []string{"77"}, Line: 6},
	}
}

func TestResolutionService_Run(t *testing.T) {
	db := seededDB()
	service := NewResolutionService(newTestResolver(t), db, zerolog.Nop())

	report, err := service.Run(context.Background(), RunRequest{
		EventID:   "event-1",
		Entries:   rosterEntries(t),
		Threshold: matching.DefaultThreshold,
		Shifts:    map[string]string{"16:00-06:00": "shift-3"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 4, report.DirectorySize)
	assert.Equal(t, 2, report.Matched)
	assert.Equal(t, 1, report.Ambiguous)
	assert.Equal(t, 2, report.Unmatched)
	require.Len(t, report.Results, 5)
	assert.Equal(t, entities.StatusAmbiguous, report.Results[1].Status)
	assert.Equal(t, entities.StatusUnmatched, report.Results[4].Status)

	stored := db.Assignments["event-1"]
	require.Len(t, stored, 2)
	assert.Equal(t, "s-01", stored[0].StaffID)
	assert.Equal(t, "shift-3", stored[0].ShiftID)
	assert.Equal(t, 1, stored[0].SortOrder)
	assert.Equal(t, "s-02", stored[1].StaffID)
	assert.Equal(t, []string{"38", "39"}, stored[1].Tables)
	assert.Equal(t, 4, stored[1].SortOrder)
	assert.Equal(t, report.Assignments, stored)

	require.Len(t, db.Audit, 1)
	assert.Equal(t, entities.AuditResolveRun, db.Audit[0].Action)
	assert.Equal(t, "event-1", db.Audit[0].Subject)
	assert.Equal(t, 2, db.Audit[0].Details["matched"])
	assert.Equal(t, 1, db.ListStaffCallCount)
}

func TestResolutionService_Run_DryRun(t *testing.T) {
	db := seededDB()
	db.Assignments["event-1"] = []entities.Assignment{{ID: "old"}}
	service := NewResolutionService(newTestResolver(t), db, zerolog.Nop())

	report, err := service.Run(context.Background(), RunRequest{
		EventID:   "event-1",
		Entries:   rosterEntries(t),
		Threshold: matching.DefaultThreshold,
		DryRun:    true,
	})

	require.NoError(t, err)
	assert.True(t, report.DryRun)
	assert.Len(t, report.Assignments, 2)
	assert.Equal(t, 0, db.ReplaceCallCount)
	assert.Equal(t, []entities.Assignment{{ID: "old"}}, db.Assignments["event-1"])
	assert.Empty(t, db.Audit)
}

func TestResolutionService_Run_ReplacesPreviousRun(t *testing.T) {
	db := seededDB()
	db.Assignments["event-1"] = []entities.Assignment{{ID: "old-1"}, {ID: "old-2"}, {ID: "old-3"}}
	service := NewResolutionService(newTestResolver(t), db, zerolog.Nop())

	_, err := service.Run(context.Background(), RunRequest{
		EventID:   "event-1",
		Entries:   []entities.RosterEntry{{RawName: "M. AKİF ŞİMŞEK"}},
		Threshold: matching.DefaultThreshold,
	})

	require.NoError(t, err)
	require.Len(t, db.Assignments["event-1"], 1)
	assert.Equal(t, "s-01", db.Assignments["event-1"][0].StaffID)
}

func TestResolutionService_Run_Errors(t *testing.T) {
	ctx := context.Background()
	resolver := newTestResolver(t)

	t.Run("missing event", func(t *testing.T) {
		service := NewResolutionService(resolver, seededDB(), zerolog.Nop())
		_, err := service.Run(ctx, RunRequest{Threshold: 85})
		require.Error(t, err)
	})

	t.Run("invalid threshold", func(t *testing.T) {
		service := NewResolutionService(resolver, seededDB(), zerolog.Nop())
		_, err := service.Run(ctx, RunRequest{EventID: "event-1", Threshold: 120})
		require.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		db := mocks.NewRelationalDB(entities.DirectoryRecord{ID: "s-1", FullName: "Ali Gezer", Active: false})
		service := NewResolutionService(resolver, db, zerolog.Nop())
		_, err := service.Run(ctx, RunRequest{EventID: "event-1", Entries: rosterEntries(t), Threshold: 85})
		require.ErrorIs(t, err, ErrEmptyDirectory)
		assert.Equal(t, 0, db.ReplaceCallCount)
	})

	t.Run("store failure", func(t *testing.T) {
		db := seededDB()
		db.ReplaceErr = errors.New("locked")
		service := NewResolutionService(resolver, db, zerolog.Nop())
		_, err := service.Run(ctx, RunRequest{EventID: "event-1", Entries: rosterEntries(t), Threshold: 85})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "locked")
		assert.Empty(t, db.Audit)
	})

	t.Run("cancelled before persisting", func(t *testing.T) {
		db := seededDB()
		service := NewResolutionService(resolver, db, zerolog.Nop())
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := service.Run(cancelled, RunRequest{EventID: "event-1", Entries: rosterEntries(t), Threshold: 85})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, db.ReplaceCallCount)
	})
}

func TestResolutionService_Run_LogsAmbiguousAndUnmatched(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)
	service := NewResolutionService(newTestResolver(t), seededDB(), logger)

	_, err := service.Run(context.Background(), RunRequest{
		EventID:   "event-1",
		Entries:   rosterEntries(t),
		Threshold: matching.DefaultThreshold,
		DryRun:    true,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "ambiguous roster entry")
	// Directory order: "ALİ GEZER" sorts before "Ali Gezer" bytewise.
	assert.Contains(t, out, `"candidates":["s-04","s-03"]`)
	assert.Contains(t, out, "unmatched roster entry")
	assert.NotContains(t, out, `"message":"matched"`)
}

func TestResolutionService_Explain(t *testing.T) {
	service := NewResolutionService(newTestResolver(t), seededDB(), zerolog.Nop())

	candidates, err := service.Explain(context.Background(), "AHMET CAN FINDICAK", 2)

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "s-02", candidates[0].Record.ID)
	assert.Equal(t, 100, candidates[0].Score)
}

func TestResolutionService_Assignments(t *testing.T) {
	db := seededDB()
	db.Assignments["event-1"] = []entities.Assignment{{ID: "a-1", StaffID: "s-01"}}
	service := NewResolutionService(newTestResolver(t), db, zerolog.Nop())

	got, err := service.Assignments(context.Background(), "event-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	db.Err = errors.New("boom")
	_, err = service.Assignments(context.Background(), "event-1")
	require.Error(t, err)
}
