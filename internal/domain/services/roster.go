package services

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
	"github.com/ersonp/roster-resolve/internal/infrastructure/parsers"
)

// RosterEntries validates parsed roster lines. Lines with errors are
// reported and left out; the rest keep their order.
func RosterEntries(raws []parsers.RawRosterEntry) ([]entities.RosterEntry, []ImportError) {
	entries := make([]entities.RosterEntry, 0, len(raws))
	var errs []ImportError

	for i := range raws {
		raw := &raws[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		name := strings.TrimSpace(raw.Name)
		if name == "" {
			errs = append(errs, ImportError{Line: lineNum, Field: "name", Message: "missing required field: name"})
			continue
		}

		start, end, err := entities.ParseShift(raw.Shift)
		if err != nil {
			errs = append(errs, ImportError{
				Line:    lineNum,
				Field:   "shift",
				Value:   raw.Shift,
				Message: fmt.Sprintf("invalid shift: %v", err),
			})
			continue
		}

		tables := make([]string, 0, len(raw.Tables))
		for _, t := range raw.Tables {
			if t = strings.TrimSpace(t); t != "" {
				tables = append(tables, t)
			}
		}

		entries = append(entries, entities.RosterEntry{
			RawName:    name,
			Tables:     slices.Clip(tables),
			ShiftStart: start,
			ShiftEnd:   end,
			Line:       lineNum,
		})
	}

	return entries, errs
}
