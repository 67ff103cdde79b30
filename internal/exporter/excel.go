package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"bigboard/pkg/contracts/domain"
)

// tierFills maps each value tier to a background fill. Buy signals shade
// green, avoid signals shade red, unranked stays grey.
var tierFills = map[domain.ValueTier]string{
	domain.TierStrongBuy:   "C6EFCE",
	domain.TierBuy:         "D8F0DA",
	domain.TierSlightBuy:   "EBF5EC",
	domain.TierSlightAvoid: "FCE8E6",
	domain.TierAvoid:       "F8CBC4",
	domain.TierStrongAvoid: "F4A7A3",
	domain.TierUnranked:    "E0E0E0",
}

// ExcelWriter renders the board and market comparison into one workbook.
type ExcelWriter struct {
	reportsDir string
	logger     *slog.Logger
}

// NewExcelWriter creates an Excel writer rooted at reportsDir.
func NewExcelWriter(reportsDir string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{reportsDir: reportsDir, logger: logger}
}

// WriteWorkbook writes the complete report workbook: the overall board,
// one sheet per position, and the ADP comparison with tier highlighting.
// comparisons may be nil when no market feed was supplied.
func (w *ExcelWriter) WriteWorkbook(name string, board *domain.RankedBoard, comparisons []domain.MarketComparison) error {
	fullPath := name
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(w.reportsDir, name)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	w.logger.Info("writing Excel workbook",
		slog.String("path", fullPath),
		slog.Int("players", len(board.Entries)),
		slog.Int("comparisons", len(comparisons)))

	f := excelize.NewFile()
	defer f.Close()

	const boardSheet = "Big Board"
	// Rename the default sheet rather than leaving an empty Sheet1 behind.
	if err := f.SetSheetName("Sheet1", boardSheet); err != nil {
		return fmt.Errorf("rename board sheet: %w", err)
	}
	if err := w.writeBoardSheet(f, boardSheet, board.Entries); err != nil {
		return err
	}

	for _, pos := range domain.Positions {
		entries := board.ByPosition(pos)
		if len(entries) == 0 {
			continue
		}
		sheet := string(pos)
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create %s sheet: %w", sheet, err)
		}
		if err := w.writeBoardSheet(f, sheet, entries); err != nil {
			return err
		}
	}

	if len(comparisons) > 0 {
		if err := w.writeComparisonSheet(f, "ADP Comparison", comparisons); err != nil {
			return err
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func (w *ExcelWriter) writeBoardSheet(f *excelize.File, sheet string, entries []domain.BoardEntry) error {
	header := make([]any, len(boardHeaders))
	for i, h := range boardHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	if err := w.styleHeader(f, sheet, len(boardHeaders)); err != nil {
		return err
	}

	for i, e := range entries {
		a := e.Annotations
		row := []any{
			e.UnifiedRank,
			e.Player.PlayerID,
			e.Player.Team,
			string(e.Player.Position),
			round2(e.Player.EffectivePoints()),
			round2(a.VOR),
			round2(a.OpportunityCost),
			round2(a.OptimalValue),
			round2(a.ZScore),
			round2(a.PositionPercentile),
			round2(a.RiskScore),
			round2(a.UpsidePotential),
			round2(a.RiskAdjustedValue),
			round2(a.BayesianProjection),
			round2(a.BayesianValue),
			round2(a.ConsistencyScore),
			round2(a.Outcome.Mean),
			round2(a.Outcome.Median),
			round2(a.Outcome.P25),
			round2(a.Outcome.P75),
			round2(a.Outcome.Volatility),
			round2(a.Outcome.ProbAboveAverage),
			round2(e.UnifiedScore),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolve cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}

	// Widen the player column; the rest stay at a readable default.
	if err := f.SetColWidth(sheet, "B", "B", 24); err != nil {
		return fmt.Errorf("set %s column width: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "E", "W", 12)
}

func (w *ExcelWriter) writeComparisonSheet(f *excelize.File, sheet string, comparisons []domain.MarketComparison) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s sheet: %w", sheet, err)
	}

	header := []any{
		"Player", "Team", "Position", "Board Rank", "ADP",
		"Rank Difference", "League-Adjusted Diff", "Value Tier",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	if err := w.styleHeader(f, sheet, len(header)); err != nil {
		return err
	}

	// One style per tier, created lazily so empty tiers cost nothing.
	tierStyles := make(map[domain.ValueTier]int, len(tierFills))

	for i, c := range comparisons {
		row := []any{c.PlayerID, c.Team, string(c.Position), c.UnifiedRank}
		if c.Matched {
			row = append(row, round2(c.ADP), round2(c.RankDifference), round2(c.LeagueAdjustedDiff))
		} else {
			row = append(row, nil, nil, nil)
		}
		row = append(row, string(c.Tier))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("resolve cell: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}

		fill, ok := tierFills[c.Tier]
		if !ok {
			continue
		}
		styleID, ok := tierStyles[c.Tier]
		if !ok {
			styleID, err = f.NewStyle(&excelize.Style{
				Fill: excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
			})
			if err != nil {
				return fmt.Errorf("create tier style: %w", err)
			}
			tierStyles[c.Tier] = styleID
		}
		tierCell, err := excelize.CoordinatesToCellName(len(row), i+2)
		if err != nil {
			return fmt.Errorf("resolve tier cell: %w", err)
		}
		if err := f.SetCellStyle(sheet, tierCell, tierCell, styleID); err != nil {
			return fmt.Errorf("style tier cell: %w", err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return fmt.Errorf("set %s column width: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "D", "H", 14)
}

func (w *ExcelWriter) styleHeader(f *excelize.File, sheet string, cols int) error {
	styleID, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	end, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return fmt.Errorf("resolve header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", end, styleID); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	return nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
