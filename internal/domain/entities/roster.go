package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a wall-clock time without a date. Shifts may cross midnight,
// so an end earlier than its start is valid.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseTimeOfDay parses "HH:MM" (24-hour clock). "24:00" is accepted and
// reads as midnight.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour == 24 && minute == 0 {
		hour = 0
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// RosterEntry is one line of staffing intent as typed by a human.
// It is read once from external data and never modified.
type RosterEntry struct {
	RawName    string     `json:"name"`
	Tables     []string   `json:"tables"`
	ShiftStart *TimeOfDay `json:"shift_start,omitempty"`
	ShiftEnd   *TimeOfDay `json:"shift_end,omitempty"` // nil means open-ended
	Line       int        `json:"-"`                   // Source line (set by parser)
}

// ShiftKey renders the shift as "HH:MM-HH:MM", the form used by event
// shift catalogs. Returns "" when either end is unknown.
func (e RosterEntry) ShiftKey() string {
	if e.ShiftStart == nil || e.ShiftEnd == nil {
		return ""
	}
	return e.ShiftStart.String() + "-" + e.ShiftEnd.String()
}

// ShiftLabel renders the shift for display, tolerating missing ends.
func (e RosterEntry) ShiftLabel() string {
	switch {
	case e.ShiftStart == nil && e.ShiftEnd == nil:
		return ""
	case e.ShiftEnd == nil:
		return e.ShiftStart.String() + "-"
	case e.ShiftStart == nil:
		return "-" + e.ShiftEnd.String()
	default:
		return e.ShiftKey()
	}
}

// ParseShift parses "HH:MM-HH:MM". The end may be left out ("16:00" or
// "16:00-") for an open-ended shift. An empty string means no shift.
func ParseShift(s string) (start, end *TimeOfDay, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil, nil
	}

	from, to, _ := strings.Cut(s, "-")
	startTime, err := ParseTimeOfDay(from)
	if err != nil {
		return nil, nil, fmt.Errorf("shift start: %w", err)
	}
	start = &startTime

	if strings.TrimSpace(to) == "" {
		return start, nil, nil
	}
	endTime, err := ParseTimeOfDay(to)
	if err != nil {
		return nil, nil, fmt.Errorf("shift end: %w", err)
	}
	return start, &endTime, nil
}
