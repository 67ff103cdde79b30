package identity

import (
	"log/slog"

	"github.com/agnivade/levenshtein"
)

// Outcome is the final state of a resolution attempt. Unresolved states
// (NoMatch, DivergenceRejected) are distinguishable but are both treated
// as "unmatched" by callers; neither is ever silently promoted to a match.
type Outcome int

const (
	// OutcomeExact means the normalized query matched a candidate exactly.
	OutcomeExact Outcome = iota
	// OutcomeApprox means the best approximate candidate cleared the threshold.
	OutcomeApprox
	// OutcomeNoMatch means no candidate scored at or above the threshold.
	OutcomeNoMatch
	// OutcomeDivergenceRejected means a candidate cleared the base threshold
	// but its reference value diverged too far from the query's and it failed
	// the stricter secondary threshold.
	OutcomeDivergenceRejected
)

// String returns a short label for logging
func (o Outcome) String() string {
	switch o {
	case OutcomeExact:
		return "exact"
	case OutcomeApprox:
		return "approx"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeDivergenceRejected:
		return "divergence_rejected"
	default:
		return "unknown"
	}
}

// Resolved reports whether the outcome is an accepted match
func (o Outcome) Resolved() bool {
	return o == OutcomeExact || o == OutcomeApprox
}

// Candidate is one entry of the target name set. RefValue carries the
// candidate's comparison value (a market rank in the ADP use case) used by
// the large-divergence rejection rule; zero means no reference available.
type Candidate struct {
	Name     string
	RefValue float64
}

// Config holds the resolver's acceptance thresholds. All scores are on the
// 0-100 similarity scale.
type Config struct {
	// Threshold is the minimum similarity for an approximate match.
	Threshold float64
	// StrictThreshold is demanded instead of Threshold when the candidate's
	// reference value diverges from the query's by more than DivergenceLimit.
	StrictThreshold float64
	// DivergenceLimit is the maximum |candidate ref - query ref| before the
	// strict threshold applies. Zero disables the guard.
	DivergenceLimit float64
}

// DefaultConfig returns the thresholds used for market-rank resolution.
func DefaultConfig() Config {
	return Config{
		Threshold:       95,
		StrictThreshold: 98,
		DivergenceLimit: 30,
	}
}

// Resolution is the result of resolving one query against the candidate set.
// Candidate is meaningful only when Outcome.Resolved() is true; Score is the
// similarity of the best candidate regardless of acceptance.
type Resolution struct {
	Candidate Candidate
	Score     float64
	Outcome   Outcome
}

// Resolver matches names from one source against a fixed candidate set from
// another. Exact normalized matches always win; approximate matching uses a
// Levenshtein ratio with threshold and divergence rejection rules.
type Resolver struct {
	cfg        Config
	logger     *slog.Logger
	candidates []Candidate
	normalized []string
	exact      map[string]int
}

// NewResolver builds a resolver over the candidate set. Candidates are
// normalized once up front; duplicate normalized names keep the first
// occurrence for exact matching.
func NewResolver(cfg Config, candidates []Candidate, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Resolver{
		cfg:        cfg,
		logger:     logger,
		candidates: candidates,
		normalized: make([]string, len(candidates)),
		exact:      make(map[string]int, len(candidates)),
	}
	for i, c := range candidates {
		norm := Normalize(c.Name)
		r.normalized[i] = norm
		if _, seen := r.exact[norm]; !seen && norm != "" {
			r.exact[norm] = i
		}
	}
	return r
}

// Resolve matches a single query name. queryRef is the query's own
// comparison value for the divergence guard (the player's composite rank in
// the ADP use case); pass 0 when unavailable to skip the guard.
func (r *Resolver) Resolve(query string, queryRef float64) Resolution {
	norm := Normalize(query)
	if norm == "" || len(r.candidates) == 0 {
		return Resolution{Outcome: OutcomeNoMatch}
	}

	// Exact match is always preferred over any approximate score.
	if idx, ok := r.exact[norm]; ok {
		return Resolution{
			Candidate: r.candidates[idx],
			Score:     100,
			Outcome:   OutcomeExact,
		}
	}

	bestIdx := -1
	bestScore := 0.0
	for i, candNorm := range r.normalized {
		score := Similarity(norm, candNorm)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < r.cfg.Threshold {
		return Resolution{Score: bestScore, Outcome: OutcomeNoMatch}
	}

	best := r.candidates[bestIdx]

	// Superficially similar names can belong to different real players.
	// When the candidate's reference value is far from the query's, demand
	// the stricter threshold before accepting.
	if r.cfg.DivergenceLimit > 0 && queryRef > 0 && best.RefValue > 0 {
		divergence := queryRef - best.RefValue
		if divergence < 0 {
			divergence = -divergence
		}
		if divergence > r.cfg.DivergenceLimit && bestScore < r.cfg.StrictThreshold {
			r.logger.Debug("rejecting divergent approximate match",
				"query", query,
				"candidate", best.Name,
				"score", bestScore,
				"divergence", divergence,
			)
			return Resolution{Score: bestScore, Outcome: OutcomeDivergenceRejected}
		}
	}

	return Resolution{
		Candidate: best,
		Score:     bestScore,
		Outcome:   OutcomeApprox,
	}
}

// Similarity computes a 0-100 character-level similarity ratio between two
// already-normalized strings, derived from Levenshtein edit distance over
// the longer string's length.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	return 100 * (1 - float64(dist)/float64(maxLen))
}
