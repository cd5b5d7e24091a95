package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/domain/ports"
	"github.com/ersonp/roster-resolve/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle existing staff records during import.
type ConflictStrategy string

const (
	// ConflictSkip skips records that already exist (by ID).
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite overwrites existing records with new data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing records
}

// ImportError represents an error for a specific line of an input file.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
}

// StaffService manages the staff directory.
type StaffService struct {
	db     ports.RelationalDB
	logger zerolog.Logger
}

// NewStaffService creates a new staff service.
func NewStaffService(db ports.RelationalDB, logger zerolog.Logger) *StaffService {
	return &StaffService{db: db, logger: logger}
}

// Import validates and stores raw staff records.
func (s *StaffService) Import(ctx context.Context, raws []parsers.RawStaff, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	records, validationErrors := validateStaff(raws)
	result.Errors = validationErrors

	if len(records) == 0 {
		return result, nil
	}

	if opts.DryRun {
		result.Imported = len(records)
		return result, nil
	}

	toSave := records
	if opts.OnConflict == ConflictSkip {
		var err error
		toSave, result.Skipped, err = s.filterExisting(ctx, records)
		if err != nil {
			return nil, err
		}
	}

	if len(toSave) > 0 {
		if err := s.db.SaveStaff(ctx, toSave); err != nil {
			return nil, fmt.Errorf("saving staff: %w", err)
		}
	}
	result.Imported = len(toSave)

	s.logger.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("errors", len(result.Errors)).
		Msg("staff imported")

	err := s.db.LogAudit(ctx, &entities.AuditEntry{
		Action: entities.AuditStaffImport,
		Details: map[string]any{
			"imported": result.Imported,
			"skipped":  result.Skipped,
			"errors":   len(result.Errors),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("writing audit entry: %w", err)
	}

	return result, nil
}

// validateStaff validates raw records and converts the valid ones.
// IDs are generated for records without one.
func validateStaff(raws []parsers.RawStaff) ([]entities.DirectoryRecord, []ImportError) {
	records := make([]entities.DirectoryRecord, 0, len(raws))
	var errs []ImportError
	seen := make(map[string]int, len(raws))
	now := time.Now()

	for i := range raws {
		raw := &raws[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		name := strings.TrimSpace(raw.FullName)
		if name == "" {
			errs = append(errs, ImportError{Line: lineNum, Field: "full_name", Message: "missing required field: full_name"})
			continue
		}

		id := strings.TrimSpace(raw.ID)
		if id != "" {
			if first, dup := seen[id]; dup {
				errs = append(errs, ImportError{
					Line:    lineNum,
					Field:   "id",
					Value:   id,
					Message: fmt.Sprintf("duplicate id %q (first seen on line %d)", id, first),
				})
				continue
			}
			seen[id] = lineNum
		} else {
			id = uuid.New().String()
		}

		active := true
		if raw.Active != nil {
			active = *raw.Active
		}

		records = append(records, entities.DirectoryRecord{
			ID:        id,
			FullName:  name,
			Active:    active,
			CreatedAt: now,
		})
	}

	return records, errs
}

// filterExisting drops records whose ID is already stored.
func (s *StaffService) filterExisting(ctx context.Context, records []entities.DirectoryRecord) ([]entities.DirectoryRecord, int, error) {
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ID
	}

	exists, err := s.db.StaffExists(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("checking existing staff: %w", err)
	}

	toSave := make([]entities.DirectoryRecord, 0, len(records))
	var skipped int
	for i := range records {
		if exists[records[i].ID] {
			skipped++
		} else {
			toSave = append(toSave, records[i])
		}
	}
	return toSave, skipped, nil
}

// List returns staff records ordered by name.
func (s *StaffService) List(ctx context.Context, includeInactive bool) ([]entities.DirectoryRecord, error) {
	records, err := s.db.ListStaff(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("listing staff: %w", err)
	}
	return records, nil
}

// Count returns the number of staff records.
func (s *StaffService) Count(ctx context.Context, includeInactive bool) (int, error) {
	n, err := s.db.CountStaff(ctx, includeInactive)
	if err != nil {
		return 0, fmt.Errorf("counting staff: %w", err)
	}
	return n, nil
}

// Deactivate removes a record from future resolution runs without deleting it.
func (s *StaffService) Deactivate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, false)
}

// Reactivate makes a deactivated record resolvable again.
func (s *StaffService) Reactivate(ctx context.Context, id string) error {
	return s.setActive(ctx, id, true)
}

func (s *StaffService) setActive(ctx context.Context, id string, active bool) error {
	existing, err := s.db.FindStaffByID(ctx, id)
	if err != nil {
		return fmt.Errorf("finding staff: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("staff '%s' not found", id)
	}
	if existing.Active == active {
		return nil
	}

	if err := s.db.SetStaffActive(ctx, id, active); err != nil {
		return fmt.Errorf("updating staff: %w", err)
	}

	s.logger.Info().Str("staff_id", id).Bool("active", active).Msg("staff status changed")

	return s.db.LogAudit(ctx, &entities.AuditEntry{
		Action:  entities.AuditStaffStatus,
		Subject: id,
		Details: map[string]any{"active": active, "name": existing.FullName},
	})
}
