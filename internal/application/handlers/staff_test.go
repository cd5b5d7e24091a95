package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/domain/mocks"
	"github.com/ersonp/roster-resolve/internal/domain/services"
)

func TestStaffHandler_Import_CSVFile(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewStaffHandler(services.NewStaffService(db, zerolog.Nop()))

	path := writeFile(t, "staff.csv", "id,full_name,active\n"+
		"s-10,Ayşe Demirci,true\n"+
		",Mehmet Yılmaz,\n"+
		"s-10,Someone Else,\n"+
		",,\n")

	result, err := handler.Import(context.Background(), path, ImportOptions{
		OnConflict: services.ConflictOverwrite,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 4, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Message, "duplicate id")
	assert.Equal(t, 5, result.Errors[1].Line)

	require.Len(t, db.Staff, 2)
	assert.Equal(t, "Ayşe Demirci", db.Staff["s-10"].FullName)
}

func TestStaffHandler_Import_SkipExisting(t *testing.T) {
	db := mocks.NewRelationalDB(entities.DirectoryRecord{ID: "s-10", FullName: "Ayşe Demirci", Active: true})
	handler := NewStaffHandler(services.NewStaffService(db, zerolog.Nop()))

	path := writeFile(t, "staff.json", `[
		{"id": "s-10", "full_name": "Ayşe Demirci-Kaya"},
		{"id": "s-11", "full_name": "Uğur Can Delibaş"}
	]`)

	result, err := handler.Import(context.Background(), path, ImportOptions{
		OnConflict: services.ConflictSkip,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "Ayşe Demirci", db.Staff["s-10"].FullName)
}

func TestStaffHandler_Import_DryRun(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewStaffHandler(services.NewStaffService(db, zerolog.Nop()))

	path := writeFile(t, "staff.yaml", "- full_name: Ayşe Demirci\n- full_name: Mehmet Yılmaz\n  active: false\n")

	result, err := handler.Import(context.Background(), path, ImportOptions{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Empty(t, db.Staff)
}

func TestStaffHandler_Import_EmptyFile(t *testing.T) {
	db := mocks.NewRelationalDB()
	handler := NewStaffHandler(services.NewStaffService(db, zerolog.Nop()))

	result, err := handler.Import(context.Background(), writeFile(t, "staff.json", "[]"), ImportOptions{})
	require.NoError(t, err)
	assert.Zero(t, result.Imported)
	assert.Empty(t, db.Audit)
}

func TestStaffHandler_Import_ParseError(t *testing.T) {
	handler := NewStaffHandler(services.NewStaffService(mocks.NewRelationalDB(), zerolog.Nop()))

	_, err := handler.Import(context.Background(), writeFile(t, "staff.csv", "id,full_name,active\ns-1,Ayşe,maybe\n"), ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid active value")
}

func TestStaffHandler_ListAndSetActive(t *testing.T) {
	db := mocks.NewRelationalDB(
		entities.DirectoryRecord{ID: "s-01", FullName: "Mehmet Akif Şimşek", Active: true},
		entities.DirectoryRecord{ID: "s-02", FullName: "Ayşe Demirci", Active: true},
	)
	handler := NewStaffHandler(services.NewStaffService(db, zerolog.Nop()))
	ctx := context.Background()

	require.NoError(t, handler.SetActive(ctx, "s-01", false))

	active, err := handler.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "s-02", active[0].ID)

	all, err := handler.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, handler.SetActive(ctx, "s-01", true))
	assert.True(t, db.Staff["s-01"].Active)

	err = handler.SetActive(ctx, "s-99", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAuditHandler_Recent(t *testing.T) {
	db := mocks.NewRelationalDB()
	ctx := context.Background()
	for _, action := range []string{entities.AuditStaffImport, entities.AuditResolveRun, entities.AuditStaffStatus} {
		require.NoError(t, db.LogAudit(ctx, &entities.AuditEntry{Action: action}))
	}
	handler := NewAuditHandler(db)

	entries, err := handler.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.AuditStaffStatus, entries[0].Action)
	assert.Equal(t, entities.AuditResolveRun, entries[1].Action)

	all, err := handler.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = handler.Recent(ctx, -1)
	require.Error(t, err)

	db.Err = errors.New("disk full")
	_, err = handler.Recent(ctx, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
