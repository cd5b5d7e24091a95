package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/domain/services"
	"github.com/ersonp/roster-resolve/internal/infrastructure/parsers"
)

// ErrRosterRejected is returned when a roster file has invalid rows and the
// run would persist. Saving a partial roster would drop those rows'
// assignments.
var ErrRosterRejected = errors.New("roster has invalid rows")

// ResolveHandler handles resolving roster files.
type ResolveHandler struct {
	service *services.ResolutionService
}

// NewResolveHandler creates a new resolve handler.
func NewResolveHandler(service *services.ResolutionService) *ResolveHandler {
	return &ResolveHandler{
		service: service,
	}
}

// ResolveOptions controls a resolve run.
type ResolveOptions struct {
	Format      string            // "json", "csv", "yaml", or "auto"
	EventID     string            // Event the assignments belong to
	Threshold   int               // Minimum score to assign
	Shifts      map[string]string // Event shift catalog
	DryRun      bool              // Resolve without saving
	AllowErrors bool              // Persist even when some rows are invalid
}

// ResolveResult contains the outcome of a resolve run.
type ResolveResult struct {
	Report *services.RunReport
	Errors []services.ImportError // Rows that could not be read
}

// Handle reads a roster file and resolves it for an event. Row errors are
// returned alongside ErrRosterRejected when the run would otherwise persist.
func (h *ResolveHandler) Handle(ctx context.Context, filePath string, opts ResolveOptions) (*ResolveResult, error) {
	var raws []parsers.RawRosterEntry
	err := openParsed(filePath, opts.Format, func(p parsers.Parser, f *os.File) error {
		var err error
		raws, err = p.ParseRoster(f)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}

	entries, rowErrors := services.RosterEntries(raws)
	result := &ResolveResult{Errors: rowErrors}

	if len(entries) == 0 {
		return result, fmt.Errorf("no valid roster entries in %s", filePath)
	}
	if len(rowErrors) > 0 && !opts.DryRun && !opts.AllowErrors {
		return result, fmt.Errorf("%w: %d of %d rows", ErrRosterRejected, len(rowErrors), len(raws))
	}

	report, err := h.service.Run(ctx, services.RunRequest{
		EventID:   opts.EventID,
		Entries:   entries,
		Threshold: opts.Threshold,
		Shifts:    opts.Shifts,
		DryRun:    opts.DryRun,
	})
	if err != nil {
		return result, err
	}

	result.Report = report
	return result, nil
}

// Explain ranks the directory against one name.
func (h *ResolveHandler) Explain(ctx context.Context, name string, limit int) ([]entities.MatchCandidate, error) {
	return h.service.Explain(ctx, name, limit)
}

// Assignments returns the stored assignments of an event.
func (h *ResolveHandler) Assignments(ctx context.Context, eventID string) ([]entities.Assignment, error) {
	if eventID == "" {
		return nil, errors.New("event ID is required")
	}
	return h.service.Assignments(ctx, eventID)
}
