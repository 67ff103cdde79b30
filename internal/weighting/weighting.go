// Package weighting provides the deterministic availability and team
// context weights applied to raw projections before valuation. These are
// simple heuristics, not an injury model; their contract is reproducibility.
package weighting

import "bigboard/pkg/contracts/domain"

// Season length used to scale games played into an availability ratio.
const regularSeasonGames = 17.0

// Age cliffs after which the availability penalty applies.
const (
	rbAgePenaltyThreshold = 28
	wrAgePenaltyThreshold = 30
	agePenaltyFactor      = 0.95
)

// InjuryWeight converts games played and age into an availability weight in
// (0, 1]. Age is optional; pass 0 when unknown to skip the age penalty.
func InjuryWeight(gamesPlayed int, age int, pos domain.Position) float64 {
	games := float64(gamesPlayed) / regularSeasonGames
	if games > 1 {
		games = 1
	}

	penalty := 1.0
	if age > 0 {
		if (pos == domain.PositionRB && age >= rbAgePenaltyThreshold) ||
			(pos == domain.PositionWR && age >= wrAgePenaltyThreshold) {
			penalty = agePenaltyFactor
		}
	}
	return games * penalty
}

// TeamContext carries the team-level inputs of the context weight alongside
// the league averages they are measured against.
type TeamContext struct {
	ImpliedPoints   float64
	WinTotal        float64
	PlaysPerGame    float64
	LeagueAvgPoints float64
	LeagueAvgWins   float64
	LeagueAvgPlays  float64
}

// Context weight coefficients: implied points per TD above average, pace
// per two plays above average. The win-total coefficient is
// position-specific: positive for RB (leads mean carries), negative for
// pass catchers and QB (trailing scripts mean volume).
const (
	impliedPointsAlpha = 0.03
	paceGamma          = 0.01
	rbWinBeta          = 0.01
	passWinBeta        = -0.01
)

// TeamContextWeight computes the multiplicative team context weight for one
// player. League averages of zero fall back to 1 to avoid dividing by zero.
func TeamContextWeight(tc TeamContext, pos domain.Position) float64 {
	avgPoints := tc.LeagueAvgPoints
	if avgPoints == 0 {
		avgPoints = 1
	}
	avgWins := tc.LeagueAvgWins
	if avgWins == 0 {
		avgWins = 1
	}
	avgPlays := tc.LeagueAvgPlays
	if avgPlays == 0 {
		avgPlays = 1
	}

	var beta float64
	switch pos {
	case domain.PositionRB:
		beta = rbWinBeta
	case domain.PositionQB, domain.PositionWR, domain.PositionTE:
		beta = passWinBeta
	}

	pointsComponent := 1 + impliedPointsAlpha*((tc.ImpliedPoints-avgPoints)/7)
	winComponent := 1 + beta*(tc.WinTotal-avgWins)
	paceComponent := 1 + paceGamma*((tc.PlaysPerGame-avgPlays)/2)

	return pointsComponent * winComponent * paceComponent
}
