// Package board implements the composite scorer: the fan-in stage that
// blends raw projections, the statistical and simulated-outcome layers, and
// the replacement-value signal into the unified big board score, and
// assigns the deterministic cross-position ranking that is the system's
// single source of truth for player order.
package board

import "bigboard/pkg/contracts/domain"

// ScoreWeights holds the blend weights of the unified score. All weights
// are tunable configuration; the defaults are the canonical scheme.
type ScoreWeights struct {
	InjuryAdjusted float64 `yaml:"injury_adjusted"`
	SimMean        float64 `yaml:"sim_mean"`
	SimMedian      float64 `yaml:"sim_median"`
	SimP25         float64 `yaml:"sim_p25"`
	SimP75         float64 `yaml:"sim_p75"`
	ProbAboveAvg   float64 `yaml:"prob_above_avg"`
	Upside         float64 `yaml:"upside"`

	// InjuryHaircut caps how much of the injury risk reaches the score;
	// risk is never applied at full weight.
	InjuryHaircut float64 `yaml:"injury_haircut"`
}

// PositionProfile holds the position-specific scoring constants.
type PositionProfile struct {
	// VORWeight scales the replacement-value term.
	VORWeight float64 `yaml:"vor_weight"`
	// ScarcityBoost multiplies the VOR term for scarce positions.
	ScarcityBoost float64 `yaml:"scarcity_boost"`
	// VolatilityPenalty multiplies the simulated volatility subtracted
	// from the score.
	VolatilityPenalty float64 `yaml:"volatility_penalty"`
	// PositionFactor multiplies the whole score.
	PositionFactor float64 `yaml:"position_factor"`
	// Cap clips the final score (QB only today; identity elsewhere).
	Cap float64 `yaml:"cap"`
}

// Config is the full composite-scorer configuration.
type Config struct {
	Weights        ScoreWeights                        `yaml:"weights"`
	Profiles       map[domain.Position]PositionProfile `yaml:"profiles"`
	DefaultProfile PositionProfile                     `yaml:"default_profile"`
}

// DefaultConfig returns the canonical scoring scheme.
func DefaultConfig() Config {
	return Config{
		Weights: ScoreWeights{
			InjuryAdjusted: 0.20,
			SimMean:        0.10,
			SimMedian:      0.02,
			SimP25:         0.01,
			SimP75:         0.01,
			ProbAboveAvg:   1.5,
			Upside:         0.06,
			InjuryHaircut:  0.2,
		},
		Profiles: map[domain.Position]PositionProfile{
			domain.PositionQB: {
				VORWeight:         0.40,
				ScarcityBoost:     1.20,
				VolatilityPenalty: 4.0,
				PositionFactor:    1.10,
				Cap:               1.0,
			},
			domain.PositionRB: {
				VORWeight:         0.40,
				ScarcityBoost:     1.05,
				VolatilityPenalty: 2.5,
				PositionFactor:    1.00,
				Cap:               1.0,
			},
			domain.PositionWR: {
				VORWeight:         0.60,
				ScarcityBoost:     1.25,
				VolatilityPenalty: 1.8,
				PositionFactor:    1.20,
				Cap:               1.0,
			},
			domain.PositionTE: {
				VORWeight:         0.35,
				ScarcityBoost:     1.15,
				VolatilityPenalty: 1.0,
				PositionFactor:    1.12,
				Cap:               1.0,
			},
		},
		DefaultProfile: PositionProfile{
			VORWeight:         0.30,
			ScarcityBoost:     1.0,
			VolatilityPenalty: 0,
			PositionFactor:    1.0,
			Cap:               1.0,
		},
	}
}

// Profile returns the profile for a position, falling back to the default.
func (c Config) Profile(pos domain.Position) PositionProfile {
	if p, ok := c.Profiles[pos]; ok {
		return p
	}
	return c.DefaultProfile
}
