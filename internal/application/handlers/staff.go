package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/domain/services"
	"github.com/ersonp/roster-resolve/internal/infrastructure/parsers"
)

// StaffHandler handles staff directory use cases.
type StaffHandler struct {
	service *services.StaffService
}

// NewStaffHandler creates a new staff handler.
func NewStaffHandler(service *services.StaffService) *StaffHandler {
	return &StaffHandler{
		service: service,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format     string                    // "json", "csv", "yaml", or "auto"
	DryRun     bool                      // Validate without saving
	OnConflict services.ConflictStrategy // How to handle existing records
}

// Import loads staff records from a file.
func (h *StaffHandler) Import(ctx context.Context, filePath string, opts ImportOptions) (*services.ImportResult, error) {
	var raws []parsers.RawStaff
	err := openParsed(filePath, opts.Format, func(p parsers.Parser, f *os.File) error {
		var err error
		raws, err = p.ParseStaff(f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading staff file: %w", err)
	}

	if len(raws) == 0 {
		return &services.ImportResult{}, nil
	}

	return h.service.Import(ctx, raws, services.ImportOptions{
		DryRun:     opts.DryRun,
		OnConflict: opts.OnConflict,
	})
}

// List returns staff records ordered by name.
func (h *StaffHandler) List(ctx context.Context, includeInactive bool) ([]entities.DirectoryRecord, error) {
	return h.service.List(ctx, includeInactive)
}

// SetActive activates or deactivates a record.
func (h *StaffHandler) SetActive(ctx context.Context, id string, active bool) error {
	if active {
		return h.service.Reactivate(ctx, id)
	}
	return h.service.Deactivate(ctx, id)
}
