// Package market compares the unified board against an external
// market-consensus (ADP) feed: it validates and cleans the feed, resolves
// player identities through the entity resolver, and buckets each player's
// league-adjusted rank differential into actionable value tiers.
package market

import (
	"log/slog"
	"sort"

	"bigboard/pkg/contracts/domain"
)

// CleanFeed validates the raw market feed before resolution. Records with a
// rank outside the plausible range are quarantined from the matchable pool,
// and duplicate ranks across distinct players are broken by a deterministic
// small offset that preserves feed order, so no two market ranks tie.
// Quarantine is a filter, never a failure.
func CleanFeed(records []domain.MarketRecord, cfg Config, logger *slog.Logger) (clean, quarantined []domain.MarketRecord) {
	if logger == nil {
		logger = slog.Default()
	}

	for i, r := range records {
		r.SourceOrder = i
		if r.PlayerName == "" || r.ADP < cfg.MinADP || r.ADP > cfg.MaxADP {
			logger.Warn("quarantining implausible market record",
				"player", r.PlayerName,
				"adp", r.ADP,
			)
			quarantined = append(quarantined, r)
			continue
		}
		clean = append(clean, r)
	}

	resolveDuplicateRanks(clean, cfg.DuplicateOffset)
	return clean, quarantined
}

// resolveDuplicateRanks walks each group of records sharing a rank in feed
// order, moving every record after the first to the next base+k·offset step
// that no other record occupies. Offset targets are checked against the full
// occupied-rank set, so breaking one tie can never create another.
func resolveDuplicateRanks(records []domain.MarketRecord, offset float64) {
	byRank := make(map[float64][]int)
	occupied := make(map[float64]bool, len(records))
	for i, r := range records {
		byRank[r.ADP] = append(byRank[r.ADP], i)
		occupied[r.ADP] = true
	}

	// Groups resolve in ascending rank order so the assignment does not
	// depend on map iteration.
	duplicated := make([]float64, 0, len(byRank))
	for rank, indices := range byRank {
		if len(indices) > 1 {
			duplicated = append(duplicated, rank)
		}
	}
	sort.Float64s(duplicated)

	for _, rank := range duplicated {
		indices := byRank[rank]
		sort.SliceStable(indices, func(a, b int) bool {
			return records[indices[a]].SourceOrder < records[indices[b]].SourceOrder
		})

		step := 1
		for _, idx := range indices[1:] {
			next := rank + offset*float64(step)
			for occupied[next] {
				step++
				next = rank + offset*float64(step)
			}
			records[idx].ADP = next
			occupied[next] = true
			step++
		}
	}
}
