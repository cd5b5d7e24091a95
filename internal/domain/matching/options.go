package matching

import (
	"fmt"
	"maps"
)

// DefaultThreshold is the acceptance score used when none is configured.
// Deployments have used values from 60 to 100.
const DefaultThreshold = 85

// defaultDiacritics folds Turkish letters (and circumflexed vowels) onto
// the base Latin alphabet. Dotted and dotless I both end up as plain I.
var defaultDiacritics = map[string]string{
	"ı": "i", "İ": "I",
	"ğ": "g", "Ğ": "G",
	"ü": "u", "Ü": "U",
	"ş": "s", "Ş": "S",
	"ö": "o", "Ö": "O",
	"ç": "c", "Ç": "C",
	"â": "a", "Â": "A",
	"î": "i", "Î": "I",
	"û": "u", "Û": "U",
}

// defaultInitials expands a leading initial to the given name it most
// commonly abbreviates.
var defaultInitials = map[string]string{
	"M": "MEHMET",
	"A": "AHMET",
	"H": "HASAN",
	"İ": "İBRAHİM",
	"O": "OSMAN",
	"Y": "YUSUF",
	"S": "SÜLEYMAN",
	"C": "CAN",
}

// DefaultDiacritics returns a copy of the built-in diacritic table.
func DefaultDiacritics() map[string]string {
	return maps.Clone(defaultDiacritics)
}

// DefaultInitials returns a copy of the built-in initial expansion table.
func DefaultInitials() map[string]string {
	return maps.Clone(defaultInitials)
}

// Options configures an engine. Tables are copied on construction, so
// callers may reuse or mutate their maps afterwards.
type Options struct {
	Diacritics map[string]string
	Initials   map[string]string
	Workers    int
}

// DefaultOptions returns the built-in tables with sequential resolution.
func DefaultOptions() Options {
	return Options{
		Diacritics: DefaultDiacritics(),
		Initials:   DefaultInitials(),
		Workers:    1,
	}
}

// ValidateThreshold reports whether threshold is a usable acceptance score.
func ValidateThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100, got %d", threshold)
	}
	return nil
}
