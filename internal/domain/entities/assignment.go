package entities

import "time"

// AssignmentTypeTable marks an assignment to a set of tables.
const AssignmentTypeTable = "table"

// Assignment is a persisted staff-to-tables allocation for one event.
type Assignment struct {
	ID             string     `json:"id"`
	EventID        string     `json:"event_id"`
	StaffID        string     `json:"staff_id"`
	StaffName      string     `json:"staff_name,omitempty"`
	Tables         []string   `json:"tables"`
	ShiftStart     *TimeOfDay `json:"shift_start,omitempty"`
	ShiftEnd       *TimeOfDay `json:"shift_end,omitempty"`
	ShiftID        string     `json:"shift_id,omitempty"`
	SortOrder      int        `json:"sort_order"`
	AssignmentType string     `json:"assignment_type"`
	Active         bool       `json:"active"`
	CreatedAt      time.Time  `json:"created_at"`
}
