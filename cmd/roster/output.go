package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resultRows renders one row per roster entry. Ambiguous rows list every
// tied candidate; unmatched rows show the closest record in parentheses.
func resultRows(results []entities.MatchResult) [][]string {
	rows := make([][]string, len(results))
	for i, r := range results {
		var staff, score, tier string
		switch {
		case r.Status == entities.StatusAmbiguous:
			names := make([]string, len(r.Tied))
			for j, c := range r.Tied {
				names[j] = c.Record.FullName + " [" + c.Record.ID + "]"
			}
			staff = strings.Join(names, " | ")
		case r.Best != nil && r.Status == entities.StatusMatched:
			staff = r.Best.Record.FullName + " [" + r.Best.Record.ID + "]"
		case r.Best != nil:
			staff = "(" + r.Best.Record.FullName + ")"
		}
		if r.Best != nil {
			score = strconv.Itoa(r.Best.Score)
			tier = string(r.Best.Tier)
		}
		rows[i] = []string{
			strconv.Itoa(r.Entry.Line),
			r.Entry.RawName,
			string(r.Status),
			staff,
			score,
			tier,
			strings.Join(r.Entry.Tables, ","),
			r.Entry.ShiftLabel(),
		}
	}
	return rows
}

func assignmentRows(assignments []entities.Assignment) [][]string {
	rows := make([][]string, len(assignments))
	for i, a := range assignments {
		rows[i] = []string{
			strconv.Itoa(a.SortOrder),
			a.StaffName,
			a.StaffID,
			strings.Join(a.Tables, ","),
			shiftLabel(a.ShiftStart, a.ShiftEnd),
			a.ShiftID,
		}
	}
	return rows
}

func shiftLabel(start, end *entities.TimeOfDay) string {
	return entities.RosterEntry{ShiftStart: start, ShiftEnd: end}.ShiftLabel()
}

// formatDetails renders audit details as sorted key=value pairs.
func formatDetails(details map[string]any) string {
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, details[k])
	}
	return strings.Join(parts, " ")
}
