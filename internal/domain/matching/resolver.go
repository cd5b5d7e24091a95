package matching

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ersonp/roster-resolve/internal/domain/entities"
)

// Resolver matches roster entries against a directory snapshot.
// It performs no I/O and keeps no state between calls.
type Resolver struct {
	normalizer *Normalizer
	expander   *Expander
	generator  *VariantGenerator
	scorer     *Scorer
	workers    int
}

// NewResolver builds the full engine from opts.
func NewResolver(opts Options) (*Resolver, error) {
	normalizer, err := NewNormalizer(opts.Diacritics)
	if err != nil {
		return nil, fmt.Errorf("building normalizer: %w", err)
	}
	expander, err := NewExpander(normalizer, opts.Initials)
	if err != nil {
		return nil, fmt.Errorf("building expander: %w", err)
	}
	generator := NewVariantGenerator(normalizer, expander)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	return &Resolver{
		normalizer: normalizer,
		expander:   expander,
		generator:  generator,
		scorer:     NewScorer(generator),
		workers:    workers,
	}, nil
}

// Normalizer returns the resolver's normalizer.
func (r *Resolver) Normalizer() *Normalizer { return r.normalizer }

// Expander returns the resolver's abbreviation expander.
func (r *Resolver) Expander() *Expander { return r.expander }

// Generator returns the resolver's variant generator.
func (r *Resolver) Generator() *VariantGenerator { return r.generator }

// Scorer returns the resolver's scorer.
func (r *Resolver) Scorer() *Scorer { return r.scorer }

// snapshotEntry is a directory record analysed once per run.
type snapshotEntry struct {
	record  entities.DirectoryRecord
	profile NameProfile
}

// Resolve returns one result per roster entry, in roster order.
//
// A result is MATCHED when a single record reaches the top score and that
// score meets threshold, AMBIGUOUS when several distinct records share a
// qualifying top score, and UNMATCHED otherwise. Unmatched results keep the
// closest record as a diagnostic.
func (r *Resolver) Resolve(entries []entities.RosterEntry, directory []entities.DirectoryRecord, threshold int) ([]entities.MatchResult, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	snapshot := r.snapshot(directory)
	cache := NewProfileCache(r.generator)
	results := make([]entities.MatchResult, len(entries))

	if r.workers == 1 || len(entries) < 2 {
		for i := range entries {
			results[i] = r.resolveOne(entries[i], snapshot, cache, threshold)
		}
		return results, nil
	}

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i := range entries {
		g.Go(func() error {
			results[i] = r.resolveOne(entries[i], snapshot, cache, threshold)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Rank scores name against every usable record and returns the best
// candidates, highest first. Records with equal scores keep directory order.
// A limit of zero or less returns every candidate.
func (r *Resolver) Rank(name string, directory []entities.DirectoryRecord, limit int) []entities.MatchCandidate {
	profile := r.generator.Profile(name)
	if profile.Empty() {
		return nil
	}

	snapshot := r.snapshot(directory)
	candidates := make([]entities.MatchCandidate, 0, len(snapshot))
	for _, s := range snapshot {
		score, tier := r.scorer.ScoreProfiles(profile, s.profile)
		candidates = append(candidates, entities.MatchCandidate{Record: s.record, Score: score, Tier: tier})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// snapshot profiles the active, non-empty directory records once.
func (r *Resolver) snapshot(directory []entities.DirectoryRecord) []snapshotEntry {
	out := make([]snapshotEntry, 0, len(directory))
	for _, rec := range directory {
		if !rec.Active {
			continue
		}
		profile := r.generator.Profile(rec.FullName)
		if profile.Empty() {
			continue
		}
		out = append(out, snapshotEntry{record: rec, profile: profile})
	}
	return out
}

func (r *Resolver) resolveOne(entry entities.RosterEntry, snapshot []snapshotEntry, cache *ProfileCache, threshold int) entities.MatchResult {
	result := entities.MatchResult{Entry: entry, Status: entities.StatusUnmatched}

	profile := cache.Profile(entry.RawName)
	if profile.Empty() {
		return result
	}

	top := -1
	var tied []entities.MatchCandidate
	seen := make(map[string]struct{})

	for _, s := range snapshot {
		score, tier := r.scorer.ScoreProfiles(profile, s.profile)
		switch {
		case score > top:
			top = score
			tied = tied[:0]
			clear(seen)
			fallthrough
		case score == top:
			if _, dup := seen[s.record.ID]; dup {
				continue
			}
			seen[s.record.ID] = struct{}{}
			tied = append(tied, entities.MatchCandidate{Record: s.record, Score: score, Tier: tier})
		}
	}

	if len(tied) == 0 {
		return result
	}

	best := tied[0]
	result.Best = &best

	// A zero score carries no evidence, whatever the threshold says.
	if top == 0 || top < threshold {
		return result
	}

	if len(tied) == 1 {
		result.Status = entities.StatusMatched
		return result
	}

	result.Status = entities.StatusAmbiguous
	result.Tied = tied
	return result
}
