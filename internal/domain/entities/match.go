package entities

// Tier names the rule that produced a score.
type Tier string

// Matching tiers, strongest first.
const (
	TierExact          Tier = "EXACT"
	TierVariantEqual   Tier = "VARIANT_EQUAL"
	TierSubset         Tier = "SUBSET"
	TierTokenOverlap   Tier = "TOKEN_OVERLAP"
	TierSurnameMatch   Tier = "SURNAME_MATCH"
	TierFirstnameMatch Tier = "FIRSTNAME_MATCH"
	TierFuzzy          Tier = "FUZZY"
	TierNone           Tier = "NONE"
)

// Scores attached to the fixed tiers. FUZZY scores vary.
const (
	ScoreExact        = 100
	ScoreVariantEqual = 98
	ScoreSubset       = 95
	ScoreTokenOverlap = 90
	ScoreNameMatch    = 85
	ScoreFuzzyCeiling = ScoreNameMatch - 1
	ScoreNone         = 0
)

// MatchStatus classifies the outcome for one roster entry.
type MatchStatus string

// Match outcomes.
const (
	StatusMatched   MatchStatus = "MATCHED"
	StatusAmbiguous MatchStatus = "AMBIGUOUS"
	StatusUnmatched MatchStatus = "UNMATCHED"
)

// MatchCandidate is a directory record with the score it earned.
type MatchCandidate struct {
	Record DirectoryRecord `json:"record"`
	Score  int             `json:"score"`
	Tier   Tier            `json:"tier"`
}

// MatchResult is the engine's verdict for one roster entry.
//
// Best is the chosen record for MATCHED, the first tied record for
// AMBIGUOUS and the closest non-match for UNMATCHED (nil when nothing could
// be scored). Tied lists every record sharing the top score when AMBIGUOUS.
type MatchResult struct {
	Entry  RosterEntry      `json:"entry"`
	Best   *MatchCandidate  `json:"best,omitempty"`
	Tied   []MatchCandidate `json:"tied,omitempty"`
	Status MatchStatus      `json:"status"`
}

// Matched reports whether the result names exactly one record.
func (r MatchResult) Matched() bool {
	return r.Status == StatusMatched && r.Best != nil
}
