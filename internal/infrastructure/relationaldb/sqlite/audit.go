package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// LogAudit appends an entry to the audit log and fills in its ID and
// creation time.
func (r *Repository) LogAudit(ctx context.Context, entry *entities.AuditEntry) error {
	var detailsJSON sql.NullString
	if entry.Details != nil {
		data, err := json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = timeNow()
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (action, subject, details, created_at) VALUES (?, ?, ?, ?)`,
		entry.Action, nullString(entry.Subject), detailsJSON, formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading audit id: %w", err)
	}
	entry.ID = id
	return nil
}

// ListAudit returns the most recent audit entries first.
// A limit of zero or less returns every entry.
func (r *Repository) ListAudit(ctx context.Context, limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, action, subject, details, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var subject, details sql.NullString
		var createdAt string

		if err := rows.Scan(&entry.ID, &entry.Action, &subject, &details, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.Subject = subject.String
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}
		if entry.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
