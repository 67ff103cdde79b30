package statmetrics

import (
	"log/slog"
	"sort"

	"bigboard/pkg/contracts/domain"
)

// Metrics holds the adjustment-layer outputs for one player, aligned by
// index with the input pool.
type Metrics struct {
	ZScore             float64
	PositionPercentile float64

	RiskScore         float64
	UpsidePotential   float64
	SharpeRatio       float64
	RiskAdjustedValue float64

	BayesianProjection    float64
	ProjectionUncertainty float64
	ConfidenceInterval    float64
	BayesianValue         float64

	ConsistencyScore         float64
	ConsistencyAdjustedValue float64
}

// Analyzer computes the statistical adjustment layer for a player pool.
type Analyzer struct {
	params Params
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer with the given heuristic parameters.
func NewAnalyzer(params Params, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{params: params, logger: logger}
}

// Annotate computes every adjustment-layer metric for the pool. Each player
// is independent given the read-only aggregates, so callers may shard the
// pool by position across workers as long as aggregates were computed over
// the full pool first.
func (a *Analyzer) Annotate(players []domain.PlayerRecord, aggregates map[domain.Position]domain.PositionAggregate) []Metrics {
	metrics := make([]Metrics, len(players))

	percentiles := positionPercentiles(players)

	for i, p := range players {
		agg := aggregates[p.Position]

		m := &metrics[i]
		m.ZScore = zScore(p.RawFantasyPoints, agg)
		m.PositionPercentile = percentiles[i]
		a.scoreRisk(p, m)
		a.scoreBayesian(p, agg, m)
		a.scoreConsistency(p, m)
	}

	a.logger.Info("computed statistical adjustments",
		"players", len(players),
		"positions", len(aggregates),
	)
	return metrics
}

// zScore returns how many standard deviations the projection sits from the
// position mean. Degenerate aggregates (one player, identical values) yield
// the neutral value 0 rather than a division error.
func zScore(points float64, agg domain.PositionAggregate) float64 {
	if agg.Degenerate() {
		return 0
	}
	return (points - agg.Mean) / agg.Std
}

// positionPercentiles computes each player's percentile within their
// position group using average ranks, so tied projections share the same
// percentile.
func positionPercentiles(players []domain.PlayerRecord) []float64 {
	percentiles := make([]float64, len(players))

	byPos := make(map[domain.Position][]int)
	for i, p := range players {
		byPos[p.Position] = append(byPos[p.Position], i)
	}

	for _, indices := range byPos {
		n := len(indices)
		if n == 1 {
			percentiles[indices[0]] = 100
			continue
		}

		sorted := append([]int(nil), indices...)
		sort.SliceStable(sorted, func(a, b int) bool {
			return players[sorted[a]].RawFantasyPoints < players[sorted[b]].RawFantasyPoints
		})

		// Average the 1-based ranks across each tie group.
		for start := 0; start < n; {
			end := start + 1
			for end < n && players[sorted[end]].RawFantasyPoints == players[sorted[start]].RawFantasyPoints {
				end++
			}
			avgRank := float64(start+1+end) / 2 // mean of ranks start+1 .. end
			pct := avgRank / float64(n) * 100
			for k := start; k < end; k++ {
				percentiles[sorted[k]] = pct
			}
			start = end
		}
	}
	return percentiles
}
