package matching

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// maxShortTokenLen bounds the given-name fragment that may follow an initial
// ("M. AKİF", "M.ALİ").
const maxShortTokenLen = 4

// reLeadingInitial matches an initial, its separator (a period, whitespace
// or both) and the following letter run. The separator is mandatory so the
// first letter of an ordinary name is never read as an initial. Combining
// marks belong to the letter they follow.
var reLeadingInitial = regexp.MustCompile(`^\s*(\p{L}\p{M}*)(\.\s*|\s+)(\p{L}[\p{L}\p{M}]*)((?s:.*))$`)

// Expander rewrites a leading initial into the full given name.
type Expander struct {
	normalizer *Normalizer
	initials   map[string]string
}

// NewExpander builds an expander. Initial keys are compared in normalized
// form, so "İ" and "I" address the same entry.
func NewExpander(normalizer *Normalizer, table map[string]string) (*Expander, error) {
	initials := make(map[string]string, len(table))
	for initial, full := range table {
		key := normalizer.Normalize(initial)
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("initial %q must be a single letter", initial)
		}
		if full == "" {
			return nil, fmt.Errorf("initial %q has an empty expansion", initial)
		}
		if prev, ok := initials[key]; ok && prev != full {
			return nil, fmt.Errorf("initial %q expands to both %q and %q", initial, prev, full)
		}
		initials[key] = full
	}
	return &Expander{normalizer: normalizer, initials: initials}, nil
}

// Expand replaces a known leading initial followed by a short token with the
// full given name. Input is NFC-composed first; the short token and
// everything after it are kept otherwise as written. Input that does not fit
// the pattern is returned unchanged.
func (e *Expander) Expand(name string) string {
	name = norm.NFC.String(name)
	m := reLeadingInitial.FindStringSubmatch(name)
	if m == nil {
		return name
	}
	initial, token, rest := m[1], m[3], m[4]
	if letterCount(token) > maxShortTokenLen {
		return name
	}
	full, ok := e.initials[e.normalizer.Normalize(initial)]
	if !ok {
		return name
	}
	return full + " " + token + rest
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
