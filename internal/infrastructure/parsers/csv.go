package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVParser parses rosters and staff files from CSV format.
type CSVParser struct{}

// ParseRoster reads a roster.
// Expected columns: name, tables, shift. Only name is required.
func (p *CSVParser) ParseRoster(r io.Reader) ([]RawRosterEntry, error) {
	var entries []RawRosterEntry
	err := p.read(r, []string{"name"}, func(record []string, colIndex map[string]int, lineNum int) error {
		entries = append(entries, RawRosterEntry{
			Name:    getColumn(record, colIndex, "name"),
			Tables:  SplitTables(getColumn(record, colIndex, "tables")),
			Shift:   getColumn(record, colIndex, "shift"),
			LineNum: lineNum,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ParseStaff reads a staff directory.
// Expected columns: id, full_name, active. Only full_name is required.
func (p *CSVParser) ParseStaff(r io.Reader) ([]RawStaff, error) {
	var staff []RawStaff
	err := p.read(r, []string{"full_name"}, func(record []string, colIndex map[string]int, lineNum int) error {
		raw := RawStaff{
			ID:       getColumn(record, colIndex, "id"),
			FullName: getColumn(record, colIndex, "full_name"),
			LineNum:  lineNum,
		}
		if activeStr := getColumn(record, colIndex, "active"); activeStr != "" {
			active, err := strconv.ParseBool(activeStr)
			if err != nil {
				return fmt.Errorf("line %d: invalid active value %q: %w", lineNum, activeStr, err)
			}
			raw.Active = &active
		}
		staff = append(staff, raw)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return staff, nil
}

// read validates the header and hands every data row to fn.
func (p *CSVParser) read(r io.Reader, required []string, fn func([]string, map[string]int, int) error) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader, required)
	if err != nil {
		return err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading CSV: %w", err)
		}
		lineNum, _ := reader.FieldPos(0)
		if err := fn(record, colIndex, lineNum); err != nil {
			return err
		}
	}
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader, required []string) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		col = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		colIndex[col] = i
	}

	for _, col := range required {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// getColumn safely retrieves a trimmed column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
