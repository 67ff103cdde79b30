package domain

// MarketRecord is one row of an external market-consensus (ADP) feed.
// The raw name is matched against PlayerRecord identities only at
// classification time; the two sets are never merged destructively.
type MarketRecord struct {
	PlayerName string  `json:"player_name" validate:"required"`
	ADP        float64 `json:"adp" validate:"gt=0"`

	// SourceOrder preserves feed order so duplicate-rank offsets are
	// assigned deterministically.
	SourceOrder int `json:"-"`
}

// ValueTier buckets the league-adjusted rank differential into an
// actionable recommendation. Tiers are ordered from strongest buy signal
// to strongest avoid signal, with TierUnranked for players absent from
// the market feed entirely.
type ValueTier string

const (
	TierStrongBuy   ValueTier = "Strong Buy"
	TierBuy         ValueTier = "Buy"
	TierSlightBuy   ValueTier = "Slight Buy"
	TierSlightAvoid ValueTier = "Slight Avoid"
	TierAvoid       ValueTier = "Avoid"
	TierStrongAvoid ValueTier = "Strong Avoid"
	TierUnranked    ValueTier = "Not in ADP"
)

// MarketComparison is the market-relative view of one ranked player.
// Unmatched players carry Matched=false with zeroed differentials and
// sort after every matched player in ADP order.
type MarketComparison struct {
	PlayerID           string    `json:"player_id"`
	Team               string    `json:"team"`
	Position           Position  `json:"position"`
	UnifiedRank        int       `json:"unified_rank"`
	UnifiedScore       float64   `json:"unified_big_board_score"`
	RawFantasyPoints   float64   `json:"raw_fantasy_points"`
	VOR                float64   `json:"vor"`
	ADP                float64   `json:"adp,omitempty"`
	RankDifference     float64   `json:"rank_difference,omitempty"`
	LeagueAdjustedDiff float64   `json:"league_adjusted_diff,omitempty"`
	Matched            bool      `json:"matched"`
	Tier               ValueTier `json:"value_tier"`
}
