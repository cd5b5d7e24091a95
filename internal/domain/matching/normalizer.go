// Package matching resolves freeform roster names against a staff directory.
//
// A name goes through three pure steps: folding (Normalizer), initial
// expansion (Expander) and variant generation (VariantGenerator). The Scorer
// compares two analysed names through ordered tiers and the Resolver picks
// the best record per roster entry, surfacing ties instead of choosing.
package matching

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer folds a name into its canonical comparison form.
type Normalizer struct {
	fold map[rune]rune
}

// NewNormalizer builds a normalizer from a letter-to-letter table.
// Each key and value must be a single character, and no value may itself
// be folded again, which keeps Normalize idempotent.
func NewNormalizer(table map[string]string) (*Normalizer, error) {
	fold := make(map[rune]rune, len(table))
	for src, dst := range table {
		from, err := singleRune(src)
		if err != nil {
			return nil, fmt.Errorf("diacritic key %q: %w", src, err)
		}
		to, err := singleRune(dst)
		if err != nil {
			return nil, fmt.Errorf("diacritic target for %q: %w", src, err)
		}
		fold[from] = to
	}

	for from, to := range fold {
		if _, ok := fold[to]; ok {
			return nil, fmt.Errorf("diacritic target %q of %q is itself folded", to, from)
		}
		if upper := []rune(strings.ToUpper(string(to))); len(upper) == 1 {
			if _, ok := fold[upper[0]]; ok {
				return nil, fmt.Errorf("upper case of diacritic target %q of %q is itself folded", to, from)
			}
		}
	}

	return &Normalizer{fold: fold}, nil
}

func singleRune(s string) (rune, error) {
	s = norm.NFC.String(s)
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("must be exactly one character")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Normalize composes the name, folds diacritics, upper-cases it and
// collapses whitespace. Folding runs again after upper-casing so a table
// listing only upper-case letters still folds lower-case input.
func (n *Normalizer) Normalize(name string) string {
	s := n.foldString(name)
	s = strings.ToUpper(s)
	s = n.foldString(s)
	s = strings.ToUpper(s)
	return strings.Join(strings.Fields(s), " ")
}

// foldString builds its transformer per call: chained transformers carry
// state and the normalizer is shared across resolver workers.
func (n *Normalizer) foldString(s string) string {
	t := transform.Chain(norm.NFC, runes.Map(n.mapRune))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func (n *Normalizer) mapRune(r rune) rune {
	if to, ok := n.fold[r]; ok {
		return to
	}
	return r
}
