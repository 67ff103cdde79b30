package weighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bigboard/pkg/contracts/domain"
)

func TestInjuryWeight(t *testing.T) {
	tests := []struct {
		name     string
		games    int
		age      int
		pos      domain.Position
		expected float64
	}{
		{"full season young RB", 17, 24, domain.PositionRB, 1.0},
		{"full season aging RB", 17, 29, domain.PositionRB, 0.95},
		{"aging WR", 17, 31, domain.PositionWR, 0.95},
		{"young WR at threshold minus one", 17, 29, domain.PositionWR, 1.0},
		{"aging QB no penalty", 17, 38, domain.PositionQB, 1.0},
		{"half season", 8, 25, domain.PositionWR, 8.0 / 17.0},
		{"unknown age skips penalty", 17, 0, domain.PositionRB, 1.0},
		{"missed whole season", 0, 25, domain.PositionRB, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, InjuryWeight(tt.games, tt.age, tt.pos), 1e-9)
		})
	}
}

func TestTeamContextWeight(t *testing.T) {
	base := TeamContext{
		ImpliedPoints:   22,
		WinTotal:        9,
		PlaysPerGame:    63,
		LeagueAvgPoints: 22,
		LeagueAvgWins:   9,
		LeagueAvgPlays:  63,
	}

	t.Run("league average team is neutral", func(t *testing.T) {
		for _, pos := range domain.Positions {
			assert.InDelta(t, 1.0, TeamContextWeight(base, pos), 1e-9)
		}
	})

	t.Run("high powered offense boosts everyone", func(t *testing.T) {
		tc := base
		tc.ImpliedPoints = 29 // one TD above average
		w := TeamContextWeight(tc, domain.PositionWR)
		assert.InDelta(t, 1.03, w, 1e-9)
	})

	t.Run("win total splits by position", func(t *testing.T) {
		tc := base
		tc.WinTotal = 12
		assert.Greater(t, TeamContextWeight(tc, domain.PositionRB), 1.0)
		assert.Less(t, TeamContextWeight(tc, domain.PositionWR), 1.0)
	})

	t.Run("fast pace boosts volume", func(t *testing.T) {
		tc := base
		tc.PlaysPerGame = 67 // four plays above average
		assert.InDelta(t, 1.02, TeamContextWeight(tc, domain.PositionTE), 1e-9)
	})

	t.Run("zero league averages fall back safely", func(t *testing.T) {
		tc := TeamContext{ImpliedPoints: 22, WinTotal: 9, PlaysPerGame: 63}
		w := TeamContextWeight(tc, domain.PositionQB)
		assert.False(t, w != w, "weight must not be NaN")
	})
}
