// Package replacement implements the value-based drafting layer: per-position
// replacement baselines under league roster constraints, value over
// replacement (VOR), positional opportunity cost, and the blended
// optimal-value score used by the standalone VBD report.
package replacement

import (
	"log/slog"
	"sort"

	"bigboard/pkg/contracts/domain"
)

// cutoffIndex returns the roster-cutoff index for a position given the
// league size. One starter per team for QB/TE, two flex-eligible starters
// per team for RB/WR.
func cutoffIndex(pos domain.Position, leagueSize int) int {
	switch pos {
	case domain.PositionRB, domain.PositionWR:
		return 2*leagueSize - 1
	default:
		return leagueSize - 1
	}
}

// ComputeBaselines computes, for each position, the raw fantasy points of
// the last roster-worthy player given the league size. Positions with fewer
// players than the cutoff fall back to the position median; positions with
// no players are omitted from the result.
func ComputeBaselines(players []domain.PlayerRecord, leagueSize int, logger *slog.Logger) map[domain.Position]float64 {
	if logger == nil {
		logger = slog.Default()
	}

	byPos := make(map[domain.Position][]float64)
	for _, p := range players {
		byPos[p.Position] = append(byPos[p.Position], p.RawFantasyPoints)
	}

	baselines := make(map[domain.Position]float64, len(byPos))
	for _, pos := range domain.Positions {
		points := byPos[pos]
		if len(points) == 0 {
			continue
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(points)))

		idx := cutoffIndex(pos, leagueSize)
		if idx < len(points) {
			baselines[pos] = points[idx]
		} else {
			baselines[pos] = median(points)
			logger.Warn("position pool smaller than roster cutoff, using median baseline",
				"position", string(pos),
				"pool_size", len(points),
				"cutoff_index", idx,
			)
		}
	}

	logger.Info("computed replacement baselines",
		"league_size", leagueSize,
		"positions", len(baselines),
	)
	return baselines
}

// median expects a sorted slice
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
