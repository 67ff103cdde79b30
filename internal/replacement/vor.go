package replacement

import (
	"sort"

	"bigboard/pkg/contracts/domain"
)

// Values holds the replacement-value outputs for one player, aligned by
// index with the input pool.
type Values struct {
	VOR             float64 `json:"vor"`
	OpportunityCost float64 `json:"opportunity_cost"`
	OptimalValue    float64 `json:"optimal_value"`
}

// Default blend weights for the standalone optimal-value score.
const (
	DefaultVORWeight             = 0.7
	DefaultOpportunityCostWeight = 0.3
)

// ComputeVOR returns each player's value over the replacement baseline for
// their position. Players at positions without a baseline get 0. VOR may be
// negative for players below replacement level.
func ComputeVOR(players []domain.PlayerRecord, baselines map[domain.Position]float64) []float64 {
	vor := make([]float64, len(players))
	for i, p := range players {
		baseline, ok := baselines[p.Position]
		if !ok {
			continue
		}
		vor[i] = p.RawFantasyPoints - baseline
	}
	return vor
}

// ComputeOpportunityCost returns, for each player, the VOR drop-off to the
// next-best player at the same position. The weakest player at each
// position has no lower peer and gets 0 by rule.
func ComputeOpportunityCost(players []domain.PlayerRecord, vor []float64) []float64 {
	oc := make([]float64, len(players))

	byPos := make(map[domain.Position][]int)
	for i, p := range players {
		byPos[p.Position] = append(byPos[p.Position], i)
	}

	for _, indices := range byPos {
		sort.SliceStable(indices, func(a, b int) bool {
			return vor[indices[a]] > vor[indices[b]]
		})
		for k := 0; k < len(indices)-1; k++ {
			oc[indices[k]] = vor[indices[k]] - vor[indices[k+1]]
		}
	}
	return oc
}

// ComputeOptimalValue blends min-max normalized VOR and opportunity cost
// into the standalone VBD score. A zero-width range normalizes to 0 for the
// whole pool rather than dividing by zero.
func ComputeOptimalValue(vor, oc []float64, vorWeight, ocWeight float64) []float64 {
	vorNorm := minMaxNormalize(vor)
	ocNorm := minMaxNormalize(oc)

	optimal := make([]float64, len(vor))
	for i := range optimal {
		optimal[i] = vorNorm[i]*vorWeight + ocNorm[i]*ocWeight
	}
	return optimal
}

// Annotate runs the full replacement-value computation over the pool and
// returns per-player values aligned by index.
func Annotate(players []domain.PlayerRecord, baselines map[domain.Position]float64) []Values {
	vor := ComputeVOR(players, baselines)
	oc := ComputeOpportunityCost(players, vor)
	optimal := ComputeOptimalValue(vor, oc, DefaultVORWeight, DefaultOpportunityCostWeight)

	values := make([]Values, len(players))
	for i := range values {
		values[i] = Values{
			VOR:             vor[i],
			OpportunityCost: oc[i],
			OptimalValue:    optimal[i],
		}
	}
	return values
}

// RankByOptimalValue returns the pool indices ordered by descending optimal
// value, ingestion order breaking ties. This ordering backs the standalone
// VBD report, not the unified board.
func RankByOptimalValue(players []domain.PlayerRecord, values []Values) []int {
	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if values[order[a]].OptimalValue != values[order[b]].OptimalValue {
			return values[order[a]].OptimalValue > values[order[b]].OptimalValue
		}
		return players[order[a]].IngestOrder < players[order[b]].IngestOrder
	})
	return order
}

func minMaxNormalize(vals []float64) []float64 {
	out := make([]float64, len(vals))
	if len(vals) == 0 {
		return out
	}

	minV, maxV := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	width := maxV - minV
	if width == 0 {
		return out
	}
	for i, v := range vals {
		out[i] = (v - minV) / width
	}
	return out
}
