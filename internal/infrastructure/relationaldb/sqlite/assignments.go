package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// ReplaceAssignments deletes the event's assignments and inserts the new
// set in one transaction, so readers never see a half-written event.
func (r *Repository) ReplaceAssignments(ctx context.Context, eventID string, assignments []entities.Assignment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE event_id = ?`, eventID); err != nil {
		return fmt.Errorf("clearing assignments: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assignments (
			id, event_id, staff_id, table_ids, shift_start, shift_end, shift_id,
			sort_order, assignment_type, is_active, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing assignment insert: %w", err)
	}
	defer stmt.Close()

	for i := range assignments {
		a := &assignments[i]
		if a.EventID != eventID {
			return fmt.Errorf("assignment %s belongs to event %q, not %q", a.ID, a.EventID, eventID)
		}

		tables := a.Tables
		if tables == nil {
			tables = []string{}
		}
		tablesJSON, err := json.Marshal(tables)
		if err != nil {
			return fmt.Errorf("marshaling tables: %w", err)
		}

		createdAt := a.CreatedAt
		if createdAt.IsZero() {
			createdAt = timeNow()
		}

		_, err = stmt.ExecContext(ctx,
			a.ID,
			a.EventID,
			a.StaffID,
			string(tablesJSON),
			nullTime(a.ShiftStart),
			nullTime(a.ShiftEnd),
			nullString(a.ShiftID),
			a.SortOrder,
			a.AssignmentType,
			boolToInt(a.Active),
			formatTime(createdAt),
		)
		if err != nil {
			return fmt.Errorf("saving assignment for staff %s: %w", a.StaffID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing assignments: %w", err)
	}
	return nil
}

// ListAssignments returns the event's assignments with staff names,
// ordered by sort order.
func (r *Repository) ListAssignments(ctx context.Context, eventID string) ([]entities.Assignment, error) {
	query := `
		SELECT a.id, a.event_id, a.staff_id, COALESCE(s.full_name, ''), a.table_ids,
			a.shift_start, a.shift_end, a.shift_id, a.sort_order, a.assignment_type,
			a.is_active, a.created_at
		FROM assignments a
		LEFT JOIN staff s ON s.id = a.staff_id
		WHERE a.event_id = ?
		ORDER BY a.sort_order, a.id
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying assignments: %w", err)
	}
	defer rows.Close()

	var assignments []entities.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

func scanAssignment(rows *sql.Rows) (*entities.Assignment, error) {
	var a entities.Assignment
	var tablesJSON, createdAt string
	var shiftStart, shiftEnd, shiftID sql.NullString
	var active int

	if err := rows.Scan(
		&a.ID,
		&a.EventID,
		&a.StaffID,
		&a.StaffName,
		&tablesJSON,
		&shiftStart,
		&shiftEnd,
		&shiftID,
		&a.SortOrder,
		&a.AssignmentType,
		&active,
		&createdAt,
	); err != nil {
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}

	if err := json.Unmarshal([]byte(tablesJSON), &a.Tables); err != nil {
		return nil, fmt.Errorf("unmarshaling tables of %s: %w", a.ID, err)
	}

	var err error
	if a.ShiftStart, err = scanTime(shiftStart); err != nil {
		return nil, err
	}
	if a.ShiftEnd, err = scanTime(shiftEnd); err != nil {
		return nil, err
	}
	a.ShiftID = shiftID.String
	a.Active = active != 0

	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func nullTime(t *entities.TimeOfDay) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.String(), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func scanTime(s sql.NullString) (*entities.TimeOfDay, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := entities.ParseTimeOfDay(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
