package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/domain/mocks"
	"github.com/ersonp/roster-resolve/internal/infrastructure/parsers"
)

func boolPtr(b bool) *bool { return &b }

func TestStaffService_Import_ValidRecords(t *testing.T) {
	db := mocks.NewRelationalDB()
	service := NewStaffService(db, zerolog.Nop())

	raws := []parsers.RawStaff{
		{ID: "s-1", FullName: " Mehmet Akif Şimşek "},
		{FullName: "Ali Gezer", Active: boolPtr(false)},
	}

	result, err := service.Import(context.Background(), raws, ImportOptions{OnConflict: ConflictOverwrite})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	require.Len(t, db.Staff, 2)
	assert.Equal(t, "Mehmet Akif Şimşek", db.Staff["s-1"].FullName)
	assert.True(t, db.Staff["s-1"].Active)

	var generated entities.DirectoryRecord
	for id, r := range db.Staff {
		if id != "s-1" {
			generated = r
		}
	}
	assert.NotEmpty(t, generated.ID)
	assert.Equal(t, "Ali Gezer", generated.FullName)
	assert.False(t, generated.Active)

	require.Len(t, db.Audit, 1)
	assert.Equal(t, entities.AuditStaffImport, db.Audit[0].Action)
}

func TestStaffService_Import_ValidationErrors(t *testing.T) {
	db := mocks.NewRelationalDB()
	service := NewStaffService(db, zerolog.Nop())

	raws := []parsers.RawStaff{
		{ID: "s-1", FullName: "Ali Gezer", LineNum: 2},
		{ID: "s-2", FullName: "   ", LineNum: 3},
		{ID: "s-1", FullName: "Ali Gezer Jr", LineNum: 4},
	}

	result, err := service.Import(context.Background(), raws, ImportOptions{OnConflict: ConflictOverwrite})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "full_name", result.Errors[0].Field)
	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Equal(t, "id", result.Errors[1].Field)
	assert.Contains(t, result.Errors[1].Message, "line 2")
}

func TestStaffService_Import_NothingValid(t *testing.T) {
	db := mocks.NewRelationalDB()
	service := NewStaffService(db, zerolog.Nop())

	result, err := service.Import(context.Background(), []parsers.RawStaff{{FullName: ""}}, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Len(t, result.Errors, 1)
	assert.Empty(t, db.Audit)
}

func TestStaffService_Import_DryRun(t *testing.T) {
	db := mocks.NewRelationalDB()
	service := NewStaffService(db, zerolog.Nop())

	result, err := service.Import(context.Background(), []parsers.RawStaff{{FullName: "Ali Gezer"}}, ImportOptions{DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Empty(t, db.Staff)
	assert.Empty(t, db.Audit)
}

func TestStaffService_Import_ConflictSkip(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	db := mocks.NewRelationalDB(entities.DirectoryRecord{ID: "s-1", FullName: "Old Name", Active: true, CreatedAt: created})
	service := NewStaffService(db, zerolog.Nop())

	raws := []parsers.RawStaff{
		{ID: "s-1", FullName: "New Name"},
		{ID: "s-2", FullName: "Ali Gezer"},
	}

	result, err := service.Import(context.Background(), raws, ImportOptions{OnConflict: ConflictSkip})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, "Old Name", db.Staff["s-1"].FullName)
	assert.Contains(t, db.Staff, "s-2")
}

func TestStaffService_Import_ConflictOverwrite(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	db := mocks.NewRelationalDB(entities.DirectoryRecord{ID: "s-1", FullName: "Old Name", Active: true, CreatedAt: created})
	service := NewStaffService(db, zerolog.Nop())

	result, err := service.Import(context.Background(), []parsers.RawStaff{{ID: "s-1", FullName: "New Name"}}, ImportOptions{OnConflict: ConflictOverwrite})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, "New Name", db.Staff["s-1"].FullName)
	assert.Equal(t, created, db.Staff["s-1"].CreatedAt)
}

func TestStaffService_Import_StoreError(t *testing.T) {
	db := mocks.NewRelationalDB()
	db.Err = errors.New("disk full")
	service := NewStaffService(db, zerolog.Nop())

	_, err := service.Import(context.Background(), []parsers.RawStaff{{FullName: "Ali Gezer"}}, ImportOptions{OnConflict: ConflictSkip})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestStaffService_ListAndCount(t *testing.T) {
	db := mocks.NewRelationalDB(
		entities.DirectoryRecord{ID: "s-2", FullName: "Mehmet Yılmaz", Active: true},
		entities.DirectoryRecord{ID: "s-1", FullName: "Ali Gezer", Active: true},
		entities.DirectoryRecord{ID: "s-3", FullName: "Ayşe Demirci", Active: false},
	)
	service := NewStaffService(db, zerolog.Nop())
	ctx := context.Background()

	active, err := service.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Ali Gezer", active[0].FullName)

	all, err := service.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	n, err := service.Count(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStaffService_Deactivate(t *testing.T) {
	db := mocks.NewRelationalDB(entities.DirectoryRecord{ID: "s-1", FullName: "Ali Gezer", Active: true})
	service := NewStaffService(db, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, service.Deactivate(ctx, "s-1"))
	assert.False(t, db.Staff["s-1"].Active)
	require.Len(t, db.Audit, 1)
	assert.Equal(t, entities.AuditStaffStatus, db.Audit[0].Action)
	assert.Equal(t, "s-1", db.Audit[0].Subject)

	// Already inactive: no second audit entry
	require.NoError(t, service.Deactivate(ctx, "s-1"))
	assert.Len(t, db.Audit, 1)

	require.NoError(t, service.Reactivate(ctx, "s-1"))
	assert.True(t, db.Staff["s-1"].Active)
	assert.Len(t, db.Audit, 2)
}

func TestStaffService_Deactivate_NotFound(t *testing.T) {
	service := NewStaffService(mocks.NewRelationalDB(), zerolog.Nop())

	err := service.Deactivate(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestImportError_Error(t *testing.T) {
	assert.Equal(t, "line 3: bad", ImportError{Line: 3, Message: "bad"}.Error())
	assert.Equal(t, "bad", ImportError{Message: "bad"}.Error())
}
