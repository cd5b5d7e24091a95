// Package parsers reads rosters and staff directory files in various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawRosterEntry is a roster line as read from a file, before validation.
type RawRosterEntry struct {
	Name    string   `json:"name" yaml:"name"`
	Tables  []string `json:"tables,omitempty" yaml:"tables,omitempty"`
	Shift   string   `json:"shift,omitempty" yaml:"shift,omitempty"` // "HH:MM-HH:MM", end optional
	LineNum int      `json:"-" yaml:"-"`                             // Line number in source file (set by parser)
}

// RawStaff is a staff directory record as read from a file, before validation.
type RawStaff struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	FullName string `json:"full_name" yaml:"full_name"`
	Active   *bool  `json:"active,omitempty" yaml:"active,omitempty"` // Pointer to distinguish false from unset
	LineNum  int    `json:"-" yaml:"-"`
}

// RosterParser reads roster entries.
type RosterParser interface {
	ParseRoster(r io.Reader) ([]RawRosterEntry, error)
}

// StaffParser reads staff records.
type StaffParser interface {
	ParseStaff(r io.Reader) ([]RawStaff, error)
}

// Parser reads both kinds of file in one format.
type Parser interface {
	RosterParser
	StaffParser
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv", "yaml".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	case "yaml", "yml":
		return &YAMLParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return nil
	}
	return ForFormat(ext)
}

// SplitTables splits a table list written as "106,107;122". Blank items are
// dropped; order and duplicates are kept.
func SplitTables(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	tables := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tables = append(tables, f)
		}
	}
	return tables
}
