package exporter

import "fmt"

// formatFloat formats a float64 for CSV output with exactly 2 decimal places
// so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatRankDiff keeps the sign visible on market differentials.
func formatRankDiff(f float64) string {
	return fmt.Sprintf("%+.1f", f)
}

func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
