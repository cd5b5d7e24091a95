// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// StaffDirectory holds the canonical staff records names resolve against.
type StaffDirectory interface {
	// SaveStaff inserts or updates records by ID. CreatedAt of existing
	// records is preserved.
	SaveStaff(ctx context.Context, records []entities.DirectoryRecord) error

	// FindStaffByID returns the record with the given ID, or nil if not found.
	FindStaffByID(ctx context.Context, id string) (*entities.DirectoryRecord, error)

	// StaffExists reports which of the given IDs are already stored.
	StaffExists(ctx context.Context, ids []string) (map[string]bool, error)

	// ListStaff returns records ordered by full name, then ID.
	ListStaff(ctx context.Context, includeInactive bool) ([]entities.DirectoryRecord, error)

	// CountStaff returns the number of stored records.
	CountStaff(ctx context.Context, includeInactive bool) (int, error)

	// SetStaffActive flips the active flag. Returns an error if the ID is unknown.
	SetStaffActive(ctx context.Context, id string, active bool) error
}

// AssignmentStore persists the staff assignments produced for an event.
type AssignmentStore interface {
	// ReplaceAssignments removes every assignment of the event and inserts
	// the given ones in a single transaction.
	ReplaceAssignments(ctx context.Context, eventID string, assignments []entities.Assignment) error

	// ListAssignments returns the event's assignments ordered by sort order.
	ListAssignments(ctx context.Context, eventID string) ([]entities.Assignment, error)
}

// AuditLog records what runs and imports changed.
type AuditLog interface {
	// LogAudit appends an entry. The entry's ID and CreatedAt are filled in.
	LogAudit(ctx context.Context, entry *entities.AuditEntry) error

	// ListAudit returns the most recent entries first.
	ListAudit(ctx context.Context, limit int) ([]entities.AuditEntry, error)
}

// RelationalDB is the full relational store used by the application.
type RelationalDB interface {
	StaffDirectory
	AssignmentStore
	AuditLog

	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
