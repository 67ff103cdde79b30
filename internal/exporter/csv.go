// Package exporter renders a ranked board into report artifacts: plain CSV
// for downstream tooling and a styled Excel workbook for humans.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"bigboard/pkg/contracts/domain"
)

// CSVWriter writes report CSV files under a fixed reports directory.
type CSVWriter struct {
	reportsDir string
	logger     *slog.Logger
}

// NewCSVWriter creates a new CSV writer rooted at reportsDir.
func NewCSVWriter(reportsDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{reportsDir: reportsDir, logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM so Excel opens the file correctly
}

// WriteCSV writes data to a CSV file under the reports directory.
func (w *CSVWriter) WriteCSV(name string, options WriteOptions) error {
	fullPath := w.resolvePath(name)

	w.logger.Info("writing CSV report",
		slog.String("path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// boardHeaders is the canonical column order for the big board CSV. The
// Excel exporter reuses the same layout so the two artifacts stay in sync.
var boardHeaders = []string{
	"Rank", "Player", "Team", "Position",
	"Fantasy Points", "VOR", "Opportunity Cost", "Optimal Value",
	"Z-Score", "Position Percentile",
	"Risk Score", "Upside Potential", "Risk-Adjusted Value",
	"Bayesian Projection", "Bayesian Value", "Consistency Score",
	"MC Mean", "MC Median", "MC P25", "MC P75", "MC Volatility", "Prob Above Avg",
	"Unified Score",
}

func boardRow(e domain.BoardEntry) []string {
	a := e.Annotations
	return []string{
		formatInt(e.UnifiedRank),
		e.Player.PlayerID,
		e.Player.Team,
		string(e.Player.Position),
		formatFloat(e.Player.EffectivePoints()),
		formatFloat(a.VOR),
		formatFloat(a.OpportunityCost),
		formatFloat(a.OptimalValue),
		formatFloat(a.ZScore),
		formatFloat(a.PositionPercentile),
		formatFloat(a.RiskScore),
		formatFloat(a.UpsidePotential),
		formatFloat(a.RiskAdjustedValue),
		formatFloat(a.BayesianProjection),
		formatFloat(a.BayesianValue),
		formatFloat(a.ConsistencyScore),
		formatFloat(a.Outcome.Mean),
		formatFloat(a.Outcome.Median),
		formatFloat(a.Outcome.P25),
		formatFloat(a.Outcome.P75),
		formatFloat(a.Outcome.Volatility),
		formatFloat(a.Outcome.ProbAboveAverage),
		formatFloat(e.UnifiedScore),
	}
}

// WriteBoard writes the full ranked board as a single CSV file.
func (w *CSVWriter) WriteBoard(name string, board *domain.RankedBoard) error {
	records := make([][]string, 0, len(board.Entries))
	for _, e := range board.Entries {
		records = append(records, boardRow(e))
	}
	return w.WriteCSV(name, WriteOptions{
		Headers:   boardHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteMarketComparison writes the ADP comparison as a CSV file, matched
// players first in ADP order, unmatched players after.
func (w *CSVWriter) WriteMarketComparison(name string, comparisons []domain.MarketComparison) error {
	headers := []string{
		"Player", "Team", "Position", "Board Rank", "ADP",
		"Rank Difference", "League-Adjusted Diff", "Value Tier",
	}
	records := make([][]string, 0, len(comparisons))
	for _, c := range comparisons {
		adp, diff, adjusted := "", "", ""
		if c.Matched {
			adp = formatFloat(c.ADP)
			diff = formatRankDiff(c.RankDifference)
			adjusted = formatRankDiff(c.LeagueAdjustedDiff)
		}
		records = append(records, []string{
			c.PlayerID,
			c.Team,
			string(c.Position),
			formatInt(c.UnifiedRank),
			adp,
			diff,
			adjusted,
			string(c.Tier),
		})
	}
	return w.WriteCSV(name, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

// WriteVBDReport writes the value-based-drafting view ordered by the
// optimal-value blend rather than the unified board rank.
func (w *CSVWriter) WriteVBDReport(name string, board *domain.RankedBoard) error {
	headers := []string{"Player", "Team", "Position", "Fantasy Points", "Baseline", "VOR", "Optimal Value"}

	entries := append([]domain.BoardEntry(nil), board.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Annotations.OptimalValue != entries[j].Annotations.OptimalValue {
			return entries[i].Annotations.OptimalValue > entries[j].Annotations.OptimalValue
		}
		return entries[i].Player.IngestOrder < entries[j].Player.IngestOrder
	})

	records := make([][]string, 0, len(entries))
	for _, e := range entries {
		records = append(records, []string{
			e.Player.PlayerID,
			e.Player.Team,
			string(e.Player.Position),
			formatFloat(e.Player.EffectivePoints()),
			formatFloat(board.Baselines[e.Player.Position]),
			formatFloat(e.Annotations.VOR),
			formatFloat(e.Annotations.OptimalValue),
		})
	}
	return w.WriteCSV(name, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: true,
	})
}

func (w *CSVWriter) resolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(w.reportsDir, name)
}
