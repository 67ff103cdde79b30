package market

import (
	"context"
	"log/slog"
	"sort"

	"bigboard/internal/identity"
	"bigboard/pkg/contracts/domain"
)

// TierThresholds are the upper bounds of each value tier on the
// league-adjusted rank differential scale, ordered from strongest buy to
// strongest avoid. A differential below StrongBuy classifies as Strong Buy;
// one at or above Avoid classifies as Strong Avoid.
type TierThresholds struct {
	StrongBuy   float64 `yaml:"strong_buy"`
	Buy         float64 `yaml:"buy"`
	SlightBuy   float64 `yaml:"slight_buy"`
	SlightAvoid float64 `yaml:"slight_avoid"`
	Avoid       float64 `yaml:"avoid"`
}

// Config holds the market comparison configuration.
type Config struct {
	LeagueSize int             `yaml:"league_size"`
	Resolver   identity.Config `yaml:"resolver"`
	Thresholds TierThresholds  `yaml:"thresholds"`

	// Plausible ADP range; records outside it are quarantined.
	MinADP float64 `yaml:"min_adp"`
	MaxADP float64 `yaml:"max_adp"`
	// DuplicateOffset breaks tied market ranks deterministically.
	DuplicateOffset float64 `yaml:"duplicate_offset"`
}

// DefaultConfig returns the canonical market comparison settings.
func DefaultConfig() Config {
	return Config{
		LeagueSize: 12,
		Resolver:   identity.DefaultConfig(),
		Thresholds: TierThresholds{
			StrongBuy:   -1.0,
			Buy:         -0.4,
			SlightBuy:   -0.15,
			SlightAvoid: 0.8,
			Avoid:       1.8,
		},
		MinADP:          1,
		MaxADP:          500,
		DuplicateOffset: 0.1,
	}
}

// Classify buckets a league-adjusted rank differential into its value tier.
func (t TierThresholds) Classify(diff float64) domain.ValueTier {
	switch {
	case diff < t.StrongBuy:
		return domain.TierStrongBuy
	case diff < t.Buy:
		return domain.TierBuy
	case diff < t.SlightBuy:
		return domain.TierSlightBuy
	case diff < t.SlightAvoid:
		return domain.TierSlightAvoid
	case diff < t.Avoid:
		return domain.TierAvoid
	default:
		return domain.TierStrongAvoid
	}
}

// Classifier compares ranked board entries against the market feed.
type Classifier struct {
	cfg    Config
	logger *slog.Logger
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(cfg Config, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.LeagueSize < 1 {
		cfg.LeagueSize = DefaultConfig().LeagueSize
	}
	return &Classifier{cfg: cfg, logger: logger}
}

// Compare resolves every board entry against the cleaned market feed and
// produces the market-relative view. Matched players are ordered by market
// rank; unresolved players carry the distinct "not in market" tier and sort
// after every matched player, ordered by their own board rank.
func (c *Classifier) Compare(ctx context.Context, b *domain.RankedBoard, feed []domain.MarketRecord) []domain.MarketComparison {
	clean, quarantined := CleanFeed(feed, c.cfg, c.logger)
	if len(quarantined) > 0 {
		c.logger.InfoContext(ctx, "quarantined market records", "count", len(quarantined))
	}

	candidates := make([]identity.Candidate, len(clean))
	for i, r := range clean {
		candidates[i] = identity.Candidate{Name: r.PlayerName, RefValue: r.ADP}
	}
	resolver := identity.NewResolver(c.cfg.Resolver, candidates, c.logger)

	comparisons := make([]domain.MarketComparison, 0, len(b.Entries))
	matched := 0
	for _, e := range b.Entries {
		comp := domain.MarketComparison{
			PlayerID:         e.Player.PlayerID,
			Team:             e.Player.Team,
			Position:         e.Player.Position,
			UnifiedRank:      e.UnifiedRank,
			UnifiedScore:     e.UnifiedScore,
			RawFantasyPoints: e.Player.RawFantasyPoints,
			VOR:              e.Annotations.VOR,
			Tier:             domain.TierUnranked,
		}

		res := resolver.Resolve(e.Player.PlayerID, float64(e.UnifiedRank))
		if res.Outcome.Resolved() {
			comp.Matched = true
			comp.ADP = res.Candidate.RefValue
			comp.RankDifference = float64(e.UnifiedRank) - comp.ADP
			comp.LeagueAdjustedDiff = comp.RankDifference / float64(c.cfg.LeagueSize)
			comp.Tier = c.cfg.Thresholds.Classify(comp.LeagueAdjustedDiff)
			matched++
		}

		comparisons = append(comparisons, comp)
	}

	sort.SliceStable(comparisons, func(i, j int) bool {
		a, b := comparisons[i], comparisons[j]
		if a.Matched != b.Matched {
			return a.Matched // unmatched always at the end
		}
		if a.Matched {
			return a.ADP < b.ADP
		}
		return a.UnifiedRank < b.UnifiedRank
	})

	c.logger.InfoContext(ctx, "market comparison complete",
		"players", len(comparisons),
		"matched", matched,
		"unmatched", len(comparisons)-matched,
	)
	return comparisons
}
