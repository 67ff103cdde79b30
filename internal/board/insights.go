package board

import (
	"sort"

	"bigboard/pkg/contracts/domain"
)

// Insights summarizes a ranked board for the report layer.
type Insights struct {
	TopOverall        []domain.BoardEntry                     `json:"top_overall"`
	TopByPosition     map[domain.Position][]domain.BoardEntry `json:"top_by_position"`
	Top20Distribution map[domain.Position]int                 `json:"top20_distribution"`
	LargestOutliers   []domain.BoardEntry                     `json:"largest_outliers"`
	BestRiskAdjusted  []domain.BoardEntry                     `json:"best_risk_adjusted"`
}

// BuildInsights derives board-level summaries: top players overall and per
// position, the position mix of the top 20, the largest statistical
// outliers by z-score, and the best risk-adjusted values.
func BuildInsights(b *domain.RankedBoard) Insights {
	ins := Insights{
		TopOverall:        topN(b.Entries, 10),
		TopByPosition:     make(map[domain.Position][]domain.BoardEntry, len(domain.Positions)),
		Top20Distribution: make(map[domain.Position]int),
	}

	for _, pos := range domain.Positions {
		if top := topN(b.ByPosition(pos), 3); len(top) > 0 {
			ins.TopByPosition[pos] = top
		}
	}

	for _, e := range topN(b.Entries, 20) {
		ins.Top20Distribution[e.Player.Position]++
	}

	ins.LargestOutliers = topBy(b.Entries, 5, func(e domain.BoardEntry) float64 {
		return e.Annotations.ZScore
	})
	ins.BestRiskAdjusted = topBy(b.Entries, 5, func(e domain.BoardEntry) float64 {
		return e.Annotations.RiskAdjustedValue
	})

	return ins
}

func topN(entries []domain.BoardEntry, n int) []domain.BoardEntry {
	if len(entries) < n {
		n = len(entries)
	}
	return append([]domain.BoardEntry(nil), entries[:n]...)
}

func topBy(entries []domain.BoardEntry, n int, key func(domain.BoardEntry) float64) []domain.BoardEntry {
	sorted := append([]domain.BoardEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	return topN(sorted, n)
}
