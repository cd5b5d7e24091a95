package matching

import (
	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// nameSimilarityFloor is the minimum similarity between the differing
// first (or last) tokens when the other end of the name agrees exactly.
const nameSimilarityFloor = 0.8

// Scorer compares analysed names through ordered tiers.
type Scorer struct {
	generator *VariantGenerator
}

// NewScorer returns a scorer that analyses directory names with generator.
func NewScorer(generator *VariantGenerator) *Scorer {
	return &Scorer{generator: generator}
}

// Score compares a roster profile with a directory name. The returned
// candidate carries the name in Record.FullName and nothing else of the
// record; callers holding the record should use ScoreRecord.
func (s *Scorer) Score(roster NameProfile, directoryName string) entities.MatchCandidate {
	return s.ScoreRecord(roster, entities.DirectoryRecord{FullName: directoryName})
}

// ScoreRecord scores a directory record against a roster profile.
func (s *Scorer) ScoreRecord(roster NameProfile, record entities.DirectoryRecord) entities.MatchCandidate {
	score, tier := s.ScoreProfiles(roster, s.generator.Profile(record.FullName))
	return entities.MatchCandidate{Record: record, Score: score, Tier: tier}
}

// ScoreProfiles applies the tiers in order and returns the first that fits.
func (s *Scorer) ScoreProfiles(roster, directory NameProfile) (int, entities.Tier) {
	if roster.Empty() || directory.Empty() {
		return entities.ScoreNone, entities.TierNone
	}

	if roster.Variants.Intersects(directory.Variants) {
		return entities.ScoreExact, entities.TierExact
	}

	if sameMultiset(roster.Tokens, directory.Tokens) {
		return entities.ScoreVariantEqual, entities.TierVariantEqual
	}

	rosterSet := toSet(roster.Tokens)
	directorySet := toSet(directory.Tokens)

	if isSubset(rosterSet, directorySet) || isSubset(directorySet, rosterSet) {
		return entities.ScoreSubset, entities.TierSubset
	}

	if countCommon(rosterSet, directorySet) >= 2 {
		return entities.ScoreTokenOverlap, entities.TierTokenOverlap
	}

	if tier, ok := matchNameEnds(roster.Tokens, directory.Tokens); ok {
		return entities.ScoreNameMatch, tier
	}

	fuzzy := percent(Similarity(roster.Expanded, directory.Expanded))
	return min(fuzzy, entities.ScoreFuzzyCeiling), entities.TierFuzzy
}

// matchNameEnds accepts a pair whose last tokens agree and whose first
// tokens are close, or the mirror case.
func matchNameEnds(a, b []string) (entities.Tier, bool) {
	if len(a) < 2 || len(b) < 2 {
		return "", false
	}
	firstA, lastA := a[0], a[len(a)-1]
	firstB, lastB := b[0], b[len(b)-1]

	if lastA == lastB && Similarity(firstA, firstB) >= nameSimilarityFloor {
		return entities.TierSurnameMatch, true
	}
	if firstA == firstB && Similarity(lastA, lastB) >= nameSimilarityFloor {
		return entities.TierFirstnameMatch, true
	}
	return "", false
}

func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, t := range a {
		counts[t]++
	}
	for _, t := range b {
		counts[t]--
		if counts[t] < 0 {
			return false
		}
	}
	return true
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func isSubset(sub, super map[string]struct{}) bool {
	if len(sub) > len(super) {
		return false
	}
	for t := range sub {
		if _, ok := super[t]; !ok {
			return false
		}
	}
	return true
}

func countCommon(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}
