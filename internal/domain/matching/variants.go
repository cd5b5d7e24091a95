package matching

import (
	"slices"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// minTokenLen drops stray initials from token sets. Initials only count
// once the Expander has turned them into a full given name.
const minTokenLen = 2

// VariantSet holds every normalized form a name is taken to represent.
type VariantSet map[string]struct{}

// NewVariantSet returns a set holding the given variants.
func NewVariantSet(variants ...string) VariantSet {
	s := make(VariantSet, len(variants))
	for _, v := range variants {
		s.Add(v)
	}
	return s
}

// Add inserts a variant.
func (s VariantSet) Add(v string) {
	s[v] = struct{}{}
}

// Contains reports whether v is in the set.
func (s VariantSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Intersects reports whether the two sets share any variant.
func (s VariantSet) Intersects(other VariantSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for v := range small {
		if large.Contains(v) {
			return true
		}
	}
	return false
}

// Sorted returns the variants in lexical order.
func (s VariantSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// NameProfile is everything the scorer needs to know about one name.
type NameProfile struct {
	Raw        string
	Normalized string     // Normalize(Raw)
	Expanded   string     // Normalize(Expand(Raw))
	Variants   VariantSet // always contains Normalized
	Tokens     []string   // tokens of Expanded, in order, short ones dropped
}

// Empty reports whether the name has nothing left to compare on.
func (p NameProfile) Empty() bool {
	return len(p.Tokens) == 0
}

// VariantGenerator derives the variant set of a name.
type VariantGenerator struct {
	normalizer *Normalizer
	expander   *Expander
}

// NewVariantGenerator wires a generator from its two building blocks.
func NewVariantGenerator(normalizer *Normalizer, expander *Expander) *VariantGenerator {
	return &VariantGenerator{normalizer: normalizer, expander: expander}
}

// Variants returns the union of the normalized name, the expanded name,
// both with spaces removed, and (for three or more words) the form with the
// first two words merged, which covers compound given names typed either
// way ("UGUR CAN" / "UGURCAN").
func (g *VariantGenerator) Variants(name string) VariantSet {
	return g.Profile(name).Variants
}

// Profile analyses a name once for scoring.
func (g *VariantGenerator) Profile(name string) NameProfile {
	normalized := g.normalizer.Normalize(name)
	expanded := g.normalizer.Normalize(g.expander.Expand(name))

	variants := NewVariantSet(
		normalized,
		removeSpaces(normalized),
		expanded,
		removeSpaces(expanded),
	)
	if words := strings.Fields(normalized); len(words) >= 3 {
		variants.Add(words[0] + words[1] + " " + strings.Join(words[2:], " "))
	}

	return NameProfile{
		Raw:        name,
		Normalized: normalized,
		Expanded:   expanded,
		Variants:   variants,
		Tokens:     Tokenize(expanded),
	}
}

// Tokenize splits a normalized name on anything that is not a letter or a
// digit and drops tokens shorter than two characters.
func Tokenize(normalized string) []string {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func removeSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// ProfileCache memoizes profiles by raw input for the duration of a run.
// It is safe for concurrent use.
type ProfileCache struct {
	generator *VariantGenerator
	mu        sync.Mutex
	profiles  map[string]NameProfile
}

// NewProfileCache returns an empty cache backed by generator.
func NewProfileCache(generator *VariantGenerator) *ProfileCache {
	return &ProfileCache{
		generator: generator,
		profiles:  make(map[string]NameProfile),
	}
}

// Profile returns the cached profile for name, computing it on first use.
func (c *ProfileCache) Profile(name string) NameProfile {
	c.mu.Lock()
	p, ok := c.profiles[name]
	c.mu.Unlock()
	if ok {
		return p
	}

	p = c.generator.Profile(name)

	c.mu.Lock()
	c.profiles[name] = p
	c.mu.Unlock()
	return p
}

// Len returns the number of cached profiles.
func (c *ProfileCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.profiles)
}
