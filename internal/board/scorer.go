package board

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"bigboard/pkg/contracts/domain"
)

// Scorer computes unified big board scores and assigns the deterministic
// cross-position ranking.
type Scorer struct {
	cfg    Config
	logger *slog.Logger
}

// NewScorer creates a scorer with the given configuration.
func NewScorer(cfg Config, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{cfg: cfg, logger: logger}
}

// Score blends each player's annotations into the unified score and builds
// the ranked board. annotations must be aligned by index with players and
// fully populated before the call; ranking is a single sequential reduction
// over the complete pool. An empty pool is the one terminal error.
func (s *Scorer) Score(ctx context.Context, players []domain.PlayerRecord, annotations []domain.Annotations) (*domain.RankedBoard, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("empty player pool")
	}
	if len(annotations) != len(players) {
		return nil, fmt.Errorf("annotation count mismatch: %d annotations for %d players", len(annotations), len(players))
	}

	entries := make([]domain.BoardEntry, len(players))
	for i, p := range players {
		entries[i] = domain.BoardEntry{
			Player:       p,
			Annotations:  annotations[i],
			UnifiedScore: s.compositeScore(p, annotations[i]),
		}
	}

	s.rank(entries)

	s.logger.InfoContext(ctx, "assigned unified board ranks",
		"players", len(entries),
		"top_score", entries[0].UnifiedScore,
	)

	return &domain.RankedBoard{Entries: entries}, nil
}

// compositeScore computes one player's unified big board score.
func (s *Scorer) compositeScore(p domain.PlayerRecord, ann domain.Annotations) float64 {
	w := s.cfg.Weights
	profile := s.cfg.Profile(p.Position)

	// Injury risk contributes at most the configured haircut of the
	// efficiency-adjusted projection, never its full weight.
	injuryPenalty := (1.0 - p.EffectiveInjuryWeight()) * w.InjuryHaircut
	injuryAdjusted := p.EffectivePoints() * (1.0 - injuryPenalty)

	out := ann.Outcome

	// Negative VOR players get no replacement-value credit rather than an
	// explicit penalty; the blend handles below-replacement players via
	// the other terms.
	vorTerm := ann.VOR
	if vorTerm < 0 {
		vorTerm = 0
	}

	score := injuryAdjusted*w.InjuryAdjusted +
		out.Mean*w.SimMean +
		out.Median*w.SimMedian +
		out.P25*w.SimP25 +
		out.P75*w.SimP75 +
		out.ProbAboveAverage*w.ProbAboveAvg +
		out.UpsidePotential*w.Upside -
		out.Volatility*profile.VolatilityPenalty +
		vorTerm*profile.VORWeight*profile.ScarcityBoost

	score *= profile.PositionFactor
	if p.Position == domain.PositionQB {
		score *= profile.Cap
	}
	return score
}

// rank sorts entries by descending score with ingestion order as the fixed
// secondary tie-break, then assigns ranks where ties share the minimum rank
// value: rank = 1 + count of strictly higher scores.
func (s *Scorer) rank(entries []domain.BoardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].UnifiedScore != entries[j].UnifiedScore {
			return entries[i].UnifiedScore > entries[j].UnifiedScore
		}
		return entries[i].Player.IngestOrder < entries[j].Player.IngestOrder
	})

	for i := range entries {
		if i > 0 && entries[i].UnifiedScore == entries[i-1].UnifiedScore {
			entries[i].UnifiedRank = entries[i-1].UnifiedRank
		} else {
			entries[i].UnifiedRank = i + 1
		}
	}
}
