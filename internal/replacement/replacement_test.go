package replacement

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigboard/pkg/contracts/domain"
)

// rbPool builds an RB pool of n players with descending point totals,
// forcing a specific value at the given index.
func rbPool(n int, forceIdx int, forceVal float64) []domain.PlayerRecord {
	players := make([]domain.PlayerRecord, n)
	for i := range players {
		points := 300.0 - float64(i)*8
		if i == forceIdx {
			points = forceVal
		}
		players[i] = domain.PlayerRecord{
			PlayerID:         fmt.Sprintf("RB %d", i+1),
			Position:         domain.PositionRB,
			RawFantasyPoints: points,
			IngestOrder:      i,
		}
	}
	return players
}

func TestComputeBaselines(t *testing.T) {
	t.Run("twelve team RB baseline at 24th player", func(t *testing.T) {
		// 30 RBs sorted descending, 24th value (index 23) forced to 110.0.
		players := rbPool(30, 23, 110.0)
		baselines := ComputeBaselines(players, 12, nil)

		require.Contains(t, baselines, domain.PositionRB)
		assert.Equal(t, 110.0, baselines[domain.PositionRB])
	})

	t.Run("QB cutoff uses one starter per team", func(t *testing.T) {
		players := make([]domain.PlayerRecord, 20)
		for i := range players {
			players[i] = domain.PlayerRecord{
				PlayerID:         fmt.Sprintf("QB %d", i+1),
				Position:         domain.PositionQB,
				RawFantasyPoints: 400.0 - float64(i)*10,
			}
		}
		baselines := ComputeBaselines(players, 12, nil)
		// Index 11 in descending order: 400 - 110 = 290.
		assert.Equal(t, 290.0, baselines[domain.PositionQB])
	})

	t.Run("median fallback for small pools", func(t *testing.T) {
		players := []domain.PlayerRecord{
			{PlayerID: "TE 1", Position: domain.PositionTE, RawFantasyPoints: 180},
			{PlayerID: "TE 2", Position: domain.PositionTE, RawFantasyPoints: 140},
			{PlayerID: "TE 3", Position: domain.PositionTE, RawFantasyPoints: 100},
		}
		baselines := ComputeBaselines(players, 12, nil)
		assert.Equal(t, 140.0, baselines[domain.PositionTE])
	})

	t.Run("empty positions omitted", func(t *testing.T) {
		baselines := ComputeBaselines(rbPool(30, 23, 110.0), 12, nil)
		assert.NotContains(t, baselines, domain.PositionWR)
	})
}

func TestComputeVOR(t *testing.T) {
	players := rbPool(30, 23, 110.0)
	players = append(players, domain.PlayerRecord{
		PlayerID:         "Target RB",
		Position:         domain.PositionRB,
		RawFantasyPoints: 150.0,
	})
	baselines := ComputeBaselines(players, 12, nil)
	vor := ComputeVOR(players, baselines)

	// A player with 150.0 points against the 110.0 baseline has VOR 40.0.
	assert.InDelta(t, 40.0, vor[len(players)-1], 1e-9)

	// Sign property: above baseline positive, at baseline zero, below negative.
	for i, p := range players {
		switch {
		case p.RawFantasyPoints > 110.0:
			assert.Positive(t, vor[i], "player %s", p.PlayerID)
		case p.RawFantasyPoints == 110.0:
			assert.Zero(t, vor[i], "player %s", p.PlayerID)
		default:
			assert.Negative(t, vor[i], "player %s", p.PlayerID)
		}
	}
}

func TestComputeOpportunityCost(t *testing.T) {
	players := []domain.PlayerRecord{
		{PlayerID: "WR 1", Position: domain.PositionWR, RawFantasyPoints: 300},
		{PlayerID: "WR 2", Position: domain.PositionWR, RawFantasyPoints: 250},
		{PlayerID: "WR 3", Position: domain.PositionWR, RawFantasyPoints: 240},
		{PlayerID: "TE 1", Position: domain.PositionTE, RawFantasyPoints: 170},
	}
	vor := []float64{100, 50, 40, 20}
	oc := ComputeOpportunityCost(players, vor)

	assert.Equal(t, 50.0, oc[0]) // drop-off WR1 -> WR2
	assert.Equal(t, 10.0, oc[1]) // drop-off WR2 -> WR3
	assert.Equal(t, 0.0, oc[2])  // weakest WR has no lower peer
	assert.Equal(t, 0.0, oc[3])  // lone TE has no peer at all
}

func TestComputeOptimalValue(t *testing.T) {
	t.Run("blend of normalized components", func(t *testing.T) {
		vor := []float64{0, 50, 100}
		oc := []float64{10, 0, 20}
		optimal := ComputeOptimalValue(vor, oc, 0.7, 0.3)

		// Best VOR and best OC both belong to the last player.
		assert.InDelta(t, 1.0, optimal[2], 1e-9)
		assert.InDelta(t, 0.7*0.0+0.3*0.5, optimal[0], 1e-9)
		assert.InDelta(t, 0.7*0.5+0.3*0.0, optimal[1], 1e-9)
	})

	t.Run("zero width range normalizes to zero", func(t *testing.T) {
		vor := []float64{75, 75, 75}
		oc := []float64{0, 0, 0}
		optimal := ComputeOptimalValue(vor, oc, 0.7, 0.3)
		for _, v := range optimal {
			assert.Zero(t, v)
		}
	})
}

func TestRankByOptimalValue(t *testing.T) {
	players := []domain.PlayerRecord{
		{PlayerID: "A", Position: domain.PositionRB, IngestOrder: 0},
		{PlayerID: "B", Position: domain.PositionRB, IngestOrder: 1},
		{PlayerID: "C", Position: domain.PositionRB, IngestOrder: 2},
	}
	values := []Values{
		{OptimalValue: 0.5},
		{OptimalValue: 0.9},
		{OptimalValue: 0.5},
	}

	order := RankByOptimalValue(players, values)
	require.Len(t, order, 3)
	assert.Equal(t, 1, order[0])
	// Equal scores keep ingestion order.
	assert.Equal(t, 0, order[1])
	assert.Equal(t, 2, order[2])
}
