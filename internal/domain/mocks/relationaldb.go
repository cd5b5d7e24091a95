package mocks

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// RelationalDB is a mock implementation of ports.RelationalDB.
type RelationalDB struct {
	Staff       map[string]entities.DirectoryRecord
	Assignments map[string][]entities.Assignment
	Audit       []entities.AuditEntry

	Err        error // Returned by every method when set
	ReplaceErr error // Returned by ReplaceAssignments only

	ListStaffCallCount int
	ReplaceCallCount   int
}

// NewRelationalDB creates a new mock RelationalDB seeded with records.
func NewRelationalDB(records ...entities.DirectoryRecord) *RelationalDB {
	m := &RelationalDB{
		Staff:       make(map[string]entities.DirectoryRecord),
		Assignments: make(map[string][]entities.Assignment),
	}
	for _, r := range records {
		m.Staff[r.ID] = r
	}
	return m
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *RelationalDB) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *RelationalDB) Close() error {
	return nil
}

// Staff methods.

// SaveStaff inserts or updates records by ID.
func (m *RelationalDB) SaveStaff(_ context.Context, records []entities.DirectoryRecord) error {
	if m.Err != nil {
		return m.Err
	}
	for _, r := range records {
		if existing, ok := m.Staff[r.ID]; ok {
			r.CreatedAt = existing.CreatedAt
		}
		m.Staff[r.ID] = r
	}
	return nil
}

// FindStaffByID returns the record with the given ID, or nil if not found.
func (m *RelationalDB) FindStaffByID(_ context.Context, id string) (*entities.DirectoryRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	r, ok := m.Staff[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// StaffExists reports which of the given IDs are stored.
func (m *RelationalDB) StaffExists(_ context.Context, ids []string) (map[string]bool, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make(map[string]bool, len(ids))
	for _, id := range ids {
		_, result[id] = m.Staff[id]
	}
	return result, nil
}

// ListStaff returns records ordered by full name, then ID.
func (m *RelationalDB) ListStaff(_ context.Context, includeInactive bool) ([]entities.DirectoryRecord, error) {
	m.ListStaffCallCount++
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.DirectoryRecord, 0, len(m.Staff))
	for _, r := range m.Staff {
		if r.Active || includeInactive {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].FullName != result[j].FullName {
			return result[i].FullName < result[j].FullName
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// CountStaff returns the number of stored records.
func (m *RelationalDB) CountStaff(ctx context.Context, includeInactive bool) (int, error) {
	records, err := m.ListStaff(ctx, includeInactive)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// SetStaffActive flips the active flag.
func (m *RelationalDB) SetStaffActive(_ context.Context, id string, active bool) error {
	if m.Err != nil {
		return m.Err
	}
	r, ok := m.Staff[id]
	if !ok {
		return fmt.Errorf("staff %s not found", id)
	}
	r.Active = active
	m.Staff[id] = r
	return nil
}

// Assignment methods.

// ReplaceAssignments swaps the event's assignments.
func (m *RelationalDB) ReplaceAssignments(_ context.Context, eventID string, assignments []entities.Assignment) error {
	m.ReplaceCallCount++
	if m.Err != nil {
		return m.Err
	}
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	m.Assignments[eventID] = append([]entities.Assignment(nil), assignments...)
	return nil
}

// ListAssignments returns the event's assignments.
func (m *RelationalDB) ListAssignments(_ context.Context, eventID string) ([]entities.Assignment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Assignments[eventID], nil
}

// Audit methods.

// LogAudit appends an entry.
func (m *RelationalDB) LogAudit(_ context.Context, entry *entities.AuditEntry) error {
	if m.Err != nil {
		return m.Err
	}
	entry.ID = int64(len(m.Audit) + 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.Audit = append(m.Audit, *entry)
	return nil
}

// ListAudit returns the most recent entries first.
func (m *RelationalDB) ListAudit(_ context.Context, limit int) ([]entities.AuditEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.AuditEntry, 0, len(m.Audit))
	for i := len(m.Audit) - 1; i >= 0; i-- {
		result = append(result, m.Audit[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}
