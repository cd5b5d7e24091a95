package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses rosters and staff files from JSON arrays.
type JSONParser struct{}

// ParseRoster reads a JSON array of roster entries.
func (p *JSONParser) ParseRoster(r io.Reader) ([]RawRosterEntry, error) {
	var entries []RawRosterEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Array index + 1 stands in for the line number
	for i := range entries {
		entries[i].LineNum = i + 1
	}
	return entries, nil
}

// ParseStaff reads a JSON array of staff records.
func (p *JSONParser) ParseStaff(r io.Reader) ([]RawStaff, error) {
	var staff []RawStaff
	if err := json.NewDecoder(r).Decode(&staff); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	for i := range staff {
		staff[i].LineNum = i + 1
	}
	return staff, nil
}
