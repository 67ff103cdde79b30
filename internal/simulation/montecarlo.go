// Package simulation produces the Monte Carlo outcome distribution summary
// for each player. Runs are seeded for reproducibility: the same pool,
// configuration, and seed always produce the same summaries regardless of
// how the pool is sharded across workers.
package simulation

import (
	"log/slog"
	"math/rand"
	"sort"

	"bigboard/pkg/contracts/domain"
)

// Config controls the simulated-outcome layer.
type Config struct {
	// Iterations is the number of outcome samples drawn per player.
	Iterations int `yaml:"iterations"`
	// Seed anchors the per-player sample streams. Each player's stream is
	// derived from Seed plus the player's ingestion order, so results do
	// not depend on processing order.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the default simulation settings.
func DefaultConfig() Config {
	return Config{
		Iterations: 2000,
		Seed:       1,
	}
}

// Simulator draws seasonal outcome samples around each player's point
// estimate and summarizes the resulting distribution.
type Simulator struct {
	cfg    Config
	logger *slog.Logger
}

// NewSimulator creates a simulator. Zero or negative iteration counts fall
// back to the default.
func NewSimulator(cfg Config, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = DefaultConfig().Iterations
	}
	return &Simulator{cfg: cfg, logger: logger}
}

// Summarize produces the outcome summary for one player. estimate is the
// player's point projection; volatility is the relative spread of outcomes
// (sigma as a fraction of the estimate); positionAvg is the player's
// position mean used for the probability-above-average statistic.
//
// With no distributional input (volatility <= 0 or estimate <= 0) every
// statistic degenerates to the point estimate and the probability defaults
// to the uninformative 0.5. The summary is always fully populated.
func (s *Simulator) Summarize(player domain.PlayerRecord, estimate, volatility, positionAvg float64) domain.OutcomeSummary {
	if volatility <= 0 || estimate <= 0 {
		return degenerate(estimate)
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed + int64(player.IngestOrder)))
	sigma := estimate * volatility

	samples := make([]float64, s.cfg.Iterations)
	for i := range samples {
		v := estimate + rng.NormFloat64()*sigma
		if v < 0 {
			v = 0 // a season outcome cannot go negative
		}
		samples[i] = v
	}
	sort.Float64s(samples)

	summary := domain.OutcomeSummary{
		Mean:       meanOf(samples),
		Median:     quantile(samples, 0.50),
		P25:        quantile(samples, 0.25),
		P75:        quantile(samples, 0.75),
		Volatility: volatility,
	}

	above := 0
	for _, v := range samples {
		if v > positionAvg {
			above++
		}
	}
	summary.ProbAboveAverage = float64(above) / float64(len(samples))

	// Expected value above the 75th percentile and expected shortfall
	// below the 25th, both as magnitudes.
	var upSum, downSum float64
	var upN, downN int
	for _, v := range samples {
		if v > summary.P75 {
			upSum += v - summary.P75
			upN++
		}
		if v < summary.P25 {
			downSum += summary.P25 - v
			downN++
		}
	}
	if upN > 0 {
		summary.UpsidePotential = upSum / float64(upN)
	}
	if downN > 0 {
		summary.DownsideRisk = downSum / float64(downN)
	}

	return summary
}

// Annotate runs the simulation for the whole pool using each player's
// effective points and volatility field, with position averages from the
// precomputed aggregates.
func (s *Simulator) Annotate(players []domain.PlayerRecord, aggregates map[domain.Position]domain.PositionAggregate) []domain.OutcomeSummary {
	summaries := make([]domain.OutcomeSummary, len(players))
	for i, p := range players {
		summaries[i] = s.Summarize(p, p.EffectivePoints(), p.Volatility, aggregates[p.Position].Mean)
	}
	s.logger.Info("simulated outcome distributions",
		"players", len(players),
		"iterations", s.cfg.Iterations,
	)
	return summaries
}

func degenerate(estimate float64) domain.OutcomeSummary {
	return domain.OutcomeSummary{
		Mean:             estimate,
		Median:           estimate,
		P25:              estimate,
		P75:              estimate,
		Volatility:       0,
		ProbAboveAverage: 0.5,
	}
}

func meanOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// quantile expects a sorted slice and interpolates linearly between ranks
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	pos := q * float64(n-1)
	lo := int(pos)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
