// Package statmetrics computes the per-player statistical adjustment layer:
// position-relative z-scores and percentiles, heuristic risk/upside scoring,
// Bayesian shrinkage toward the positional prior, and consistency scoring.
// The signals are reproducible and bounded, not predictive; every heuristic
// constant lives in Params so schemes can be tuned without code changes.
package statmetrics

import "bigboard/pkg/contracts/domain"

// Params holds every heuristic constant used by the adjustment layer.
type Params struct {
	// Risk and upside accumulation
	PositionRisk      map[domain.Position]float64 `yaml:"position_risk"`
	PositionUpside    map[domain.Position]float64 `yaml:"position_upside"`
	ElitePointsMin    float64                     `yaml:"elite_points_min"`
	EliteRiskBonus    float64                     `yaml:"elite_risk_bonus"`
	EliteUpsideBonus  float64                     `yaml:"elite_upside_bonus"`
	RookieRiskBonus   float64                     `yaml:"rookie_risk_bonus"`
	RookieUpsideBonus float64                     `yaml:"rookie_upside_bonus"`
	NewSystemRisk     float64                     `yaml:"new_system_risk"`
	StableRiskCredit  float64                     `yaml:"stable_risk_credit"`
	StableUpsideBonus float64                     `yaml:"stable_upside_bonus"`

	// Bayesian shrinkage
	BaseUncertainty      float64 `yaml:"base_uncertainty"`
	RookieUncertainty    float64 `yaml:"rookie_uncertainty"`
	NewSystemUncertainty float64 `yaml:"new_system_uncertainty"`
	FallbackPriorMean    float64 `yaml:"fallback_prior_mean"`
	FallbackPriorStd     float64 `yaml:"fallback_prior_std"`

	// Consistency scoring
	BaseConsistency             float64                     `yaml:"base_consistency"`
	PositionConsistency         map[domain.Position]float64 `yaml:"position_consistency"`
	SweetSpotLow                float64                     `yaml:"sweet_spot_low"`
	SweetSpotHigh               float64                     `yaml:"sweet_spot_high"`
	SweetSpotBonus              float64                     `yaml:"sweet_spot_bonus"`
	HighScorerMin               float64                     `yaml:"high_scorer_min"`
	HighScorerPenalty           float64                     `yaml:"high_scorer_penalty"`
	RookieConsistencyPenalty    float64                     `yaml:"rookie_consistency_penalty"`
	VeteranConsistencyBonus     float64                     `yaml:"veteran_consistency_bonus"`
	StabilityBonus              float64                     `yaml:"stability_bonus"`
	NewSystemConsistencyPenalty float64                     `yaml:"new_system_consistency_penalty"`

	// Team context lists. New-system teams add risk and uncertainty;
	// stable teams reduce risk and back the stability bonus.
	NewSystemTeams []string `yaml:"new_system_teams"`
	StableTeams    []string `yaml:"stable_teams"`
	StabilityTeams []string `yaml:"stability_teams"`
}

// DefaultParams returns the canonical heuristic scheme.
func DefaultParams() Params {
	return Params{
		PositionRisk: map[domain.Position]float64{
			domain.PositionQB: 0.1,
			domain.PositionRB: 0.3,
			domain.PositionWR: 0.2,
			domain.PositionTE: 0.25,
		},
		PositionUpside: map[domain.Position]float64{
			domain.PositionQB: 0.3,
			domain.PositionRB: 0.2,
			domain.PositionWR: 0.4,
			domain.PositionTE: 0.1,
		},
		ElitePointsMin:    300,
		EliteRiskBonus:    0.2,
		EliteUpsideBonus:  0.1,
		RookieRiskBonus:   0.2,
		RookieUpsideBonus: 0.3,
		NewSystemRisk:     0.15,
		StableRiskCredit:  0.1,
		StableUpsideBonus: 0.1,

		BaseUncertainty:      0.3,
		RookieUncertainty:    0.2,
		NewSystemUncertainty: 0.1,
		FallbackPriorMean:    200,
		FallbackPriorStd:     50,

		BaseConsistency: 0.5,
		PositionConsistency: map[domain.Position]float64{
			domain.PositionQB: 0.2,
			domain.PositionWR: 0.1,
			domain.PositionRB: -0.1,
			domain.PositionTE: -0.2,
		},
		SweetSpotLow:                200,
		SweetSpotHigh:               350,
		SweetSpotBonus:              0.1,
		HighScorerMin:               400,
		HighScorerPenalty:           0.1,
		RookieConsistencyPenalty:    0.2,
		VeteranConsistencyBonus:     0.1,
		StabilityBonus:              0.1,
		NewSystemConsistencyPenalty: 0.1,

		NewSystemTeams: []string{"WAS", "NE", "CHI"},
		StableTeams:    []string{"KC", "BUF", "CIN"},
		StabilityTeams: []string{"KC", "BUF", "CIN", "PHI"},
	}
}

func inList(team string, list []string) bool {
	for _, t := range list {
		if t == team {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
