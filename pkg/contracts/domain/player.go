package domain

// Position identifies a fantasy-relevant roster position
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// Positions lists every position in canonical order
var Positions = []Position{PositionQB, PositionRB, PositionWR, PositionTE}

// IsValid checks if the position is one of the supported roster positions
func (p Position) IsValid() bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return true
	}
	return false
}

// StatLine holds the raw per-category projections for a single player
type StatLine struct {
	RushingYards   float64 `json:"rushing_yds"`
	RushingTDs     float64 `json:"rushing_tds"`
	Receptions     float64 `json:"receptions"`
	ReceivingYards float64 `json:"receiving_yds"`
	ReceivingTDs   float64 `json:"receiving_tds"`
	PassingYards   float64 `json:"passing_yds"`
	PassingTDs     float64 `json:"passing_tds"`
}

// PlayerRecord represents one player's projection for a single run.
// Identity fields are immutable after ingestion; pipeline stages attach
// derived values through the Annotations structure rather than mutating
// the record in place.
type PlayerRecord struct {
	PlayerID string   `json:"player_id" validate:"required"`
	Team     string   `json:"team"`
	Position Position `json:"position" validate:"required"`
	Stats    StatLine `json:"stats"`

	// RawFantasyPoints is the PPR conversion of Stats, treated as the
	// ground input by every downstream stage.
	RawFantasyPoints float64 `json:"raw_fantasy_points"`

	// Optional upstream weighting inputs. Zero values mean "absent" and
	// each consumer substitutes its documented default.
	EfficiencyAdjustedPoints float64 `json:"efficiency_adjusted_points,omitempty"`
	InjuryWeight             float64 `json:"injury_weight,omitempty"`
	Volatility               float64 `json:"volatility,omitempty"`
	GamesPlayed              int     `json:"games_played,omitempty"`
	Age                      int     `json:"age,omitempty"`

	// IngestOrder is the position of the record in the source feed. It is
	// the fixed secondary tie-break for every deterministic ordering.
	IngestOrder int `json:"-"`
}

// EffectivePoints returns the efficiency-adjusted projection, falling back
// to the raw projection when no adjustment was supplied upstream.
func (p PlayerRecord) EffectivePoints() float64 {
	if p.EfficiencyAdjustedPoints > 0 {
		return p.EfficiencyAdjustedPoints
	}
	return p.RawFantasyPoints
}

// EffectiveInjuryWeight returns the availability weight, defaulting to 1.0
// (fully available) when absent.
func (p PlayerRecord) EffectiveInjuryWeight() float64 {
	if p.InjuryWeight > 0 {
		return p.InjuryWeight
	}
	return 1.0
}

// PositionAggregate holds per-position summary statistics over the pool of
// raw fantasy point projections. It is computed once per run, before any
// parallel fan-out, and read-only thereafter.
type PositionAggregate struct {
	Position Position `json:"position"`
	Mean     float64  `json:"mean"`
	Std      float64  `json:"std"`
	Count    int      `json:"count"`
}

// Degenerate reports whether the aggregate cannot support statistical
// adjustment (fewer than two players or no spread).
func (pa PositionAggregate) Degenerate() bool {
	return pa.Count < 2 || pa.Std == 0
}
