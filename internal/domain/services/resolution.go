package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/domain/matching"
	"github.com/ersonp/roster-resolve/internal/domain/ports"
)

// ErrEmptyDirectory is returned when a run finds no active staff. Persisting
// such a run would wipe the event's assignments.
var ErrEmptyDirectory = errors.New("staff directory has no active records")

// RunRequest describes one resolution run for an event.
type RunRequest struct {
	EventID   string
	Entries   []entities.RosterEntry
	Threshold int
	Shifts    map[string]string // Event shift catalog, "HH:MM-HH:MM" -> shift ID
	DryRun    bool              // Resolve and build without persisting
}

// RunReport summarises a resolution run.
type RunReport struct {
	RunID         string
	EventID       string
	Threshold     int
	DryRun        bool
	DirectorySize int
	Results       []entities.MatchResult
	Assignments   []entities.Assignment
	Matched       int
	Ambiguous     int
	Unmatched     int
	Duration      time.Duration
}

// ResolutionService resolves rosters against the staff directory and
// persists the resulting assignments.
type ResolutionService struct {
	resolver *matching.Resolver
	db       ports.RelationalDB
	logger   zerolog.Logger
}

// NewResolutionService creates a new resolution service.
func NewResolutionService(resolver *matching.Resolver, db ports.RelationalDB, logger zerolog.Logger) *ResolutionService {
	return &ResolutionService{
		resolver: resolver,
		db:       db,
		logger:   logger,
	}
}

// Run resolves every roster entry against one snapshot of the active
// directory and, unless DryRun is set, replaces the event's assignments with
// the matched ones. Ambiguous and unmatched entries are reported, never
// persisted.
func (s *ResolutionService) Run(ctx context.Context, req RunRequest) (*RunReport, error) {
	if req.EventID == "" {
		return nil, errors.New("event ID is required")
	}
	if err := matching.ValidateThreshold(req.Threshold); err != nil {
		return nil, err
	}

	started := time.Now()
	runID := uuid.New().String()
	logger := s.logger.With().Str("run_id", runID).Str("event_id", req.EventID).Logger()

	directory, err := s.db.ListStaff(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading staff directory: %w", err)
	}
	if len(directory) == 0 {
		return nil, ErrEmptyDirectory
	}

	results, err := s.resolver.Resolve(req.Entries, directory, req.Threshold)
	if err != nil {
		return nil, fmt.Errorf("resolving roster: %w", err)
	}

	report := &RunReport{
		RunID:         runID,
		EventID:       req.EventID,
		Threshold:     req.Threshold,
		DryRun:        req.DryRun,
		DirectorySize: len(directory),
		Results:       results,
	}
	for i := range results {
		s.tally(logger, report, &results[i])
	}

	report.Assignments, err = NewAssignmentBuilder(req.Shifts).BuildAll(req.EventID, results)
	if err != nil {
		return nil, fmt.Errorf("building assignments: %w", err)
	}

	if req.DryRun {
		report.Duration = time.Since(started)
		logger.Info().Int("matched", report.Matched).Msg("dry run, nothing persisted")
		return report, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.db.ReplaceAssignments(ctx, req.EventID, report.Assignments); err != nil {
		return nil, fmt.Errorf("saving assignments: %w", err)
	}

	report.Duration = time.Since(started)
	err = s.db.LogAudit(ctx, &entities.AuditEntry{
		Action:  entities.AuditResolveRun,
		Subject: req.EventID,
		Details: map[string]any{
			"run_id":    runID,
			"threshold": req.Threshold,
			"entries":   len(results),
			"matched":   report.Matched,
			"ambiguous": report.Ambiguous,
			"unmatched": report.Unmatched,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("writing audit entry: %w", err)
	}

	logger.Info().
		Int("matched", report.Matched).
		Int("ambiguous", report.Ambiguous).
		Int("unmatched", report.Unmatched).
		Dur("took", report.Duration).
		Msg("assignments replaced")

	return report, nil
}

func (s *ResolutionService) tally(logger zerolog.Logger, report *RunReport, r *entities.MatchResult) {
	switch r.Status {
	case entities.StatusMatched:
		report.Matched++
		logger.Debug().
			Str("name", r.Entry.RawName).
			Str("staff", r.Best.Record.FullName).
			Int("score", r.Best.Score).
			Str("tier", string(r.Best.Tier)).
			Msg("matched")
	case entities.StatusAmbiguous:
		report.Ambiguous++
		ids := make([]string, len(r.Tied))
		for i, c := range r.Tied {
			ids[i] = c.Record.ID
		}
		logger.Warn().
			Str("name", r.Entry.RawName).
			Int("line", r.Entry.Line).
			Int("score", r.Best.Score).
			Strs("candidates", ids).
			Msg("ambiguous roster entry")
	default:
		report.Unmatched++
		ev := logger.Info().Str("name", r.Entry.RawName).Int("line", r.Entry.Line)
		if r.Best != nil {
			ev = ev.Str("closest", r.Best.Record.FullName).Int("score", r.Best.Score)
		}
		ev.Msg("unmatched roster entry")
	}
}

// Explain ranks the active directory against a single name.
func (s *ResolutionService) Explain(ctx context.Context, name string, limit int) ([]entities.MatchCandidate, error) {
	directory, err := s.db.ListStaff(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading staff directory: %w", err)
	}
	return s.resolver.Rank(name, directory, limit), nil
}

// Assignments returns the persisted assignments of an event.
func (s *ResolutionService) Assignments(ctx context.Context, eventID string) ([]entities.Assignment, error) {
	assignments, err := s.db.ListAssignments(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	return assignments, nil
}
