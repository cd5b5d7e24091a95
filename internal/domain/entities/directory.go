package entities

import "time"

// DirectoryRecord is a canonical staff identity. The resolution engine only
// reads records; the staff store owns them.
type DirectoryRecord struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
