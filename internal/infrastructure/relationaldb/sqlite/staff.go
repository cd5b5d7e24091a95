package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// SaveStaff inserts or updates records by ID in one transaction.
// created_at of existing rows is left untouched.
func (r *Repository) SaveStaff(ctx context.Context, records []entities.DirectoryRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO staff (id, full_name, is_active, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			full_name = excluded.full_name,
			is_active = excluded.is_active
	`)
	if err != nil {
		return fmt.Errorf("preparing staff insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		createdAt := rec.CreatedAt
		if createdAt.IsZero() {
			createdAt = timeNow()
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.FullName, boolToInt(rec.Active), formatTime(createdAt)); err != nil {
			return fmt.Errorf("saving staff %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing staff: %w", err)
	}
	return nil
}

// FindStaffByID finds a staff record by its ID.
func (r *Repository) FindStaffByID(ctx context.Context, id string) (*entities.DirectoryRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, is_active, created_at
		FROM staff
		WHERE id = ?
	`, id)

	rec, err := scanStaff(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// StaffExists reports which of the given IDs are stored.
func (r *Repository) StaffExists(ctx context.Context, ids []string) (map[string]bool, error) {
	result := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
		result[id] = false
	}

	rows, err := r.db.QueryContext(ctx, "SELECT id FROM staff WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return nil, fmt.Errorf("querying staff ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning staff id: %w", err)
		}
		result[id] = true
	}
	return result, rows.Err()
}

// ListStaff lists staff records ordered by full name, then ID.
func (r *Repository) ListStaff(ctx context.Context, includeInactive bool) ([]entities.DirectoryRecord, error) {
	query := `
		SELECT id, full_name, is_active, created_at
		FROM staff
		WHERE is_active = 1 OR ?
		ORDER BY full_name, id
	`
	rows, err := r.db.QueryContext(ctx, query, boolToInt(includeInactive))
	if err != nil {
		return nil, fmt.Errorf("querying staff: %w", err)
	}
	defer rows.Close()

	var records []entities.DirectoryRecord
	for rows.Next() {
		rec, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// CountStaff returns the number of staff records.
func (r *Repository) CountStaff(ctx context.Context, includeInactive bool) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM staff WHERE is_active = 1 OR ?`,
		boolToInt(includeInactive),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting staff: %w", err)
	}
	return count, nil
}

// SetStaffActive updates the active flag of a record.
func (r *Repository) SetStaffActive(ctx context.Context, id string, active bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE staff SET is_active = ? WHERE id = ?`, boolToInt(active), id)
	if err != nil {
		return fmt.Errorf("updating staff: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("staff not found: %s", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStaff(s scanner) (*entities.DirectoryRecord, error) {
	var rec entities.DirectoryRecord
	var active int
	var createdAt string
	if err := s.Scan(&rec.ID, &rec.FullName, &active, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning staff: %w", err)
	}
	rec.Active = active != 0

	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = t
	return &rec, nil
}
