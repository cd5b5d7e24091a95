package services

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// ErrNotMatched is returned when an assignment is requested for a result
// that does not name exactly one staff record.
var ErrNotMatched = errors.New("result is not matched")

// AssignmentBuilder turns matched results into assignments for one event.
type AssignmentBuilder struct {
	shifts map[string]string // "HH:MM-HH:MM" -> shift ID
	now    func() time.Time
	newID  func() string
}

// NewAssignmentBuilder creates a builder using the event's shift catalog.
// A nil catalog leaves every ShiftID empty.
func NewAssignmentBuilder(shifts map[string]string) *AssignmentBuilder {
	return &AssignmentBuilder{
		shifts: shifts,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Build creates the assignment for a matched result. Position is the
// 1-based place of the entry in the roster sequence and becomes its sort
// order. Tables are copied in the roster's order, duplicates included.
func (b *AssignmentBuilder) Build(eventID string, result entities.MatchResult, position int) (entities.Assignment, error) {
	if !result.Matched() {
		return entities.Assignment{}, fmt.Errorf("%q (%s): %w", result.Entry.RawName, result.Status, ErrNotMatched)
	}
	if eventID == "" {
		return entities.Assignment{}, errors.New("event ID is required")
	}
	if position < 1 {
		return entities.Assignment{}, fmt.Errorf("position must be at least 1, got %d", position)
	}

	entry := result.Entry
	tables := slices.Clone(entry.Tables)
	if tables == nil {
		tables = []string{}
	}

	return entities.Assignment{
		ID:             b.newID(),
		EventID:        eventID,
		StaffID:        result.Best.Record.ID,
		StaffName:      result.Best.Record.FullName,
		Tables:         tables,
		ShiftStart:     copyTime(entry.ShiftStart),
		ShiftEnd:       copyTime(entry.ShiftEnd),
		ShiftID:        b.shifts[entry.ShiftKey()],
		SortOrder:      position,
		AssignmentType: entities.AssignmentTypeTable,
		Active:         true,
		CreatedAt:      b.now(),
	}, nil
}

// BuildAll builds assignments for every matched result. Results are in
// roster order and each assignment keeps its entry's position, so gaps left
// by unmatched or ambiguous entries stay visible in the sort order.
func (b *AssignmentBuilder) BuildAll(eventID string, results []entities.MatchResult) ([]entities.Assignment, error) {
	assignments := make([]entities.Assignment, 0, len(results))
	for i, r := range results {
		if !r.Matched() {
			continue
		}
		a, err := b.Build(eventID, r, i+1)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func copyTime(t *entities.TimeOfDay) *entities.TimeOfDay {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
