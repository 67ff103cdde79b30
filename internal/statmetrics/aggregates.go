package statmetrics

import (
	"math"
	"strings"

	"bigboard/pkg/contracts/domain"
)

// ComputeAggregates computes per-position mean, sample standard deviation,
// and count of raw fantasy points over the pool. It runs once per pipeline
// run, before any parallel fan-out; the result is treated as immutable by
// every downstream stage.
func ComputeAggregates(players []domain.PlayerRecord) map[domain.Position]domain.PositionAggregate {
	byPos := make(map[domain.Position][]float64)
	for _, p := range players {
		byPos[p.Position] = append(byPos[p.Position], p.RawFantasyPoints)
	}

	aggregates := make(map[domain.Position]domain.PositionAggregate, len(byPos))
	for pos, points := range byPos {
		aggregates[pos] = domain.PositionAggregate{
			Position: pos,
			Mean:     mean(points),
			Std:      sampleStd(points),
			Count:    len(points),
		}
	}
	return aggregates
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleStd returns the n-1 standard deviation; pools of fewer than two
// players have no spread and return 0.
func sampleStd(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	sumSq := 0.0
	for _, v := range vals {
		sumSq += (v - m) * (v - m)
	}
	return math.Sqrt(sumSq / float64(len(vals)-1))
}

// rookie suffix tokens checked against the raw display name
var rookieSuffixes = map[string]bool{
	"jr":  true,
	"iii": true,
	"iv":  true,
	"v":   true,
}

// HasRookieSuffix reports whether the player's display name carries a
// generational suffix. Used as a cheap experience proxy: suffixed names
// correlate with recent draft classes in the projection feeds this system
// ingests, so they attract extra risk, upside, and uncertainty.
func HasRookieSuffix(name string) bool {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return false
	}
	last := strings.ToLower(strings.Trim(fields[len(fields)-1], "."))
	return rookieSuffixes[last]
}
