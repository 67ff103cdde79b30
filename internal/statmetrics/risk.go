package statmetrics

import "bigboard/pkg/contracts/domain"

// scoreRisk accumulates the heuristic risk and upside scores and derives
// the risk-adjusted value. Risk and upside are clamped to [0,1] before use.
func (a *Analyzer) scoreRisk(p domain.PlayerRecord, m *Metrics) {
	risk := a.params.PositionRisk[p.Position]
	upside := a.params.PositionUpside[p.Position]

	// Elite producers carry elevated expectations and elevated ceilings.
	if p.RawFantasyPoints > a.params.ElitePointsMin {
		risk += a.params.EliteRiskBonus
		upside += a.params.EliteUpsideBonus
	}

	if HasRookieSuffix(p.PlayerID) {
		risk += a.params.RookieRiskBonus
		upside += a.params.RookieUpsideBonus
	}

	switch {
	case inList(p.Team, a.params.NewSystemTeams):
		risk += a.params.NewSystemRisk
	case inList(p.Team, a.params.StableTeams):
		risk -= a.params.StableRiskCredit
		upside += a.params.StableUpsideBonus
	}

	// Return per unit of risk, with a floor for risk-free accumulations.
	if risk > 0 {
		m.SharpeRatio = p.RawFantasyPoints / (risk * 100)
	} else {
		m.SharpeRatio = p.RawFantasyPoints / 10
	}

	m.RiskScore = clamp01(risk)
	m.UpsidePotential = clamp01(upside)
	m.RiskAdjustedValue = p.RawFantasyPoints * (1 + m.UpsidePotential) * (1 - m.RiskScore*0.5)
}

// scoreBayesian regresses the projection toward the positional prior in
// proportion to the player's uncertainty. Higher uncertainty means stronger
// regression to the positional mean.
func (a *Analyzer) scoreBayesian(p domain.PlayerRecord, agg domain.PositionAggregate, m *Metrics) {
	priorMean := agg.Mean
	priorStd := agg.Std
	if agg.Count == 0 {
		priorMean = a.params.FallbackPriorMean
		priorStd = a.params.FallbackPriorStd
	}

	uncertainty := a.params.BaseUncertainty
	if HasRookieSuffix(p.PlayerID) {
		uncertainty += a.params.RookieUncertainty
	}
	if inList(p.Team, a.params.NewSystemTeams) {
		uncertainty += a.params.NewSystemUncertainty
	}
	uncertainty = clamp01(uncertainty)

	m.ProjectionUncertainty = uncertainty
	m.BayesianProjection = p.RawFantasyPoints*(1-uncertainty) + priorMean*uncertainty
	m.ConfidenceInterval = priorStd * uncertainty
	m.BayesianValue = m.BayesianProjection * (1 - uncertainty*0.5)
}

// scoreConsistency derives the bounded consistency score and its adjusted
// value from position type, scoring level, experience, and team stability.
func (a *Analyzer) scoreConsistency(p domain.PlayerRecord, m *Metrics) {
	consistency := a.params.BaseConsistency
	consistency += a.params.PositionConsistency[p.Position]

	switch {
	case p.RawFantasyPoints >= a.params.SweetSpotLow && p.RawFantasyPoints <= a.params.SweetSpotHigh:
		consistency += a.params.SweetSpotBonus
	case p.RawFantasyPoints > a.params.HighScorerMin:
		consistency -= a.params.HighScorerPenalty
	}

	if HasRookieSuffix(p.PlayerID) {
		consistency -= a.params.RookieConsistencyPenalty
	} else {
		consistency += a.params.VeteranConsistencyBonus
	}

	switch {
	case inList(p.Team, a.params.StabilityTeams):
		consistency += a.params.StabilityBonus
	case inList(p.Team, a.params.NewSystemTeams):
		consistency -= a.params.NewSystemConsistencyPenalty
	}

	m.ConsistencyScore = clamp01(consistency)
	m.ConsistencyAdjustedValue = p.RawFantasyPoints * (1 + m.ConsistencyScore*0.2)
}
