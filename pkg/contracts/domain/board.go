package domain

// Annotations collects every derived value a pipeline stage attaches to a
// player. Stages produce annotations independently; the composite scorer
// merges them at fan-in, so no stage ever mutates another stage's output.
type Annotations struct {
	// Replacement-value engine
	VOR             float64 `json:"vor"`
	OpportunityCost float64 `json:"opportunity_cost"`
	OptimalValue    float64 `json:"optimal_value"`

	// Statistical adjustment layer
	ZScore                   float64 `json:"z_score"`
	PositionPercentile       float64 `json:"position_percentile"`
	RiskScore                float64 `json:"risk_score"`
	UpsidePotential          float64 `json:"upside_potential"`
	RiskAdjustedValue        float64 `json:"risk_adjusted_value"`
	BayesianProjection       float64 `json:"bayesian_projection"`
	ProjectionUncertainty    float64 `json:"projection_uncertainty"`
	ConfidenceInterval       float64 `json:"confidence_interval"`
	BayesianValue            float64 `json:"bayesian_value"`
	ConsistencyScore         float64 `json:"consistency_score"`
	ConsistencyAdjustedValue float64 `json:"consistency_adjusted_value"`

	// Simulated-outcome layer
	Outcome OutcomeSummary `json:"outcome"`
}

// OutcomeSummary is the Monte Carlo distribution summary for one player.
// When no distributional input exists every statistic degenerates to the
// point estimate and ProbAboveAverage to 0.5.
type OutcomeSummary struct {
	Mean             float64 `json:"mc_mean"`
	Median           float64 `json:"mc_median"`
	P25              float64 `json:"mc_25th_percentile"`
	P75              float64 `json:"mc_75th_percentile"`
	Volatility       float64 `json:"mc_volatility"`
	ProbAboveAverage float64 `json:"mc_probability_above_avg"`
	UpsidePotential  float64 `json:"mc_upside_potential"`
	DownsideRisk     float64 `json:"mc_downside_risk"`
}

// BoardEntry is one fully annotated, ranked player on the big board.
type BoardEntry struct {
	Player      PlayerRecord `json:"player"`
	Annotations Annotations  `json:"annotations"`

	UnifiedScore float64 `json:"unified_big_board_score"`
	UnifiedRank  int     `json:"unified_rank"`
}

// RankedBoard is the ordered output of a full valuation run: every entry
// carries exactly one dense rank, ties share the minimum rank value, and
// the sequence is sorted by rank with ingestion order breaking ties.
type RankedBoard struct {
	RunID      string               `json:"run_id"`
	LeagueSize int                  `json:"league_size"`
	Entries    []BoardEntry         `json:"entries"`
	Baselines  map[Position]float64 `json:"baselines"`
}

// ByPosition returns the board entries for one position, preserving rank order.
func (b *RankedBoard) ByPosition(pos Position) []BoardEntry {
	var out []BoardEntry
	for _, e := range b.Entries {
		if e.Player.Position == pos {
			out = append(out, e)
		}
	}
	return out
}
