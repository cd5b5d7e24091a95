package entities

import "time"

// Audit actions.
const (
	AuditResolveRun  = "resolve.run"
	AuditStaffImport = "staff.import"
	AuditStaffStatus = "staff.status"
)

// AuditEntry represents a logged action in the system.
type AuditEntry struct {
	ID        int64          `json:"id"`
	Action    string         `json:"action"`
	Subject   string         `json:"subject,omitempty"` // Event ID or staff ID the action touched
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
