// Package projections ingests per-position projection CSV files and
// converts stat lines into full-PPR fantasy points, producing the
// PlayerRecord pool consumed by the valuation pipeline.
package projections

import "bigboard/pkg/contracts/domain"

// Full-PPR scoring coefficients.
const (
	pointsPerRushingYard   = 0.1
	pointsPerRushingTD     = 6.0
	pointsPerReception     = 1.0
	pointsPerReceivingYard = 0.1
	pointsPerReceivingTD   = 6.0
	pointsPerPassingYard   = 0.04
	pointsPerPassingTD     = 4.0
)

// FantasyPoints converts a stat line into full-PPR fantasy points.
func FantasyPoints(s domain.StatLine) float64 {
	return s.RushingYards*pointsPerRushingYard +
		s.RushingTDs*pointsPerRushingTD +
		s.Receptions*pointsPerReception +
		s.ReceivingYards*pointsPerReceivingYard +
		s.ReceivingTDs*pointsPerReceivingTD +
		s.PassingYards*pointsPerPassingYard +
		s.PassingTDs*pointsPerPassingTD
}
