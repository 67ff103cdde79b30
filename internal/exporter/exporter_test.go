package exporter

import (
	"bytes"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bigboard/pkg/contracts/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testBoard() *domain.RankedBoard {
	return &domain.RankedBoard{
		RunID:      "test-run",
		LeagueSize: 12,
		Baselines: map[domain.Position]float64{
			domain.PositionRB: 110,
			domain.PositionWR: 120,
		},
		Entries: []domain.BoardEntry{
			{
				Player: domain.PlayerRecord{
					PlayerID:         "Bijan Robinson",
					Team:             "ATL",
					Position:         domain.PositionRB,
					RawFantasyPoints: 285.4,
				},
				Annotations: domain.Annotations{
					VOR:          175.4,
					OptimalValue: 0.82,
					Outcome: domain.OutcomeSummary{
						Mean:             280.1,
						ProbAboveAverage: 0.92,
					},
				},
				UnifiedScore: 148.7,
				UnifiedRank:  1,
			},
			{
				Player: domain.PlayerRecord{
					PlayerID:         "Justin Jefferson",
					Team:             "MIN",
					Position:         domain.PositionWR,
					RawFantasyPoints: 290.0,
				},
				Annotations:  domain.Annotations{VOR: 170.0, OptimalValue: 0.91},
				UnifiedScore: 142.3,
				UnifiedRank:  2,
			},
		},
	}
}

func testComparisons() []domain.MarketComparison {
	return []domain.MarketComparison{
		{
			PlayerID:           "Bijan Robinson",
			Team:               "ATL",
			Position:           domain.PositionRB,
			UnifiedRank:        1,
			ADP:                4.0,
			RankDifference:     -3.0,
			LeagueAdjustedDiff: -0.25,
			Matched:            true,
			Tier:               domain.TierSlightBuy,
		},
		{
			PlayerID:    "Justin Jefferson",
			Team:        "MIN",
			Position:    domain.PositionWR,
			UnifiedRank: 2,
			Matched:     false,
			Tier:        domain.TierUnranked,
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Strip the BOM before parsing.
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		data = data[3:]
	}
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteBoardCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, testLogger())

	require.NoError(t, w.WriteBoard("board.csv", testBoard()))

	rows := readCSV(t, filepath.Join(dir, "board.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, boardHeaders, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Bijan Robinson", rows[1][1])
	assert.Equal(t, "285.40", rows[1][4])
	assert.Equal(t, "175.40", rows[1][5])
	assert.Equal(t, "148.70", rows[1][len(rows[1])-1])
}

func TestWriteMarketComparisonCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, testLogger())

	require.NoError(t, w.WriteMarketComparison("adp.csv", testComparisons()))

	rows := readCSV(t, filepath.Join(dir, "adp.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, "4.00", rows[1][4])
	assert.Equal(t, "-3.0", rows[1][5])
	assert.Equal(t, "Slight Buy", rows[1][7])

	// Unmatched rows leave the market columns blank.
	assert.Equal(t, "", rows[2][4])
	assert.Equal(t, "Not in ADP", rows[2][7])
}

func TestWriteVBDReport(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, testLogger())

	require.NoError(t, w.WriteVBDReport("vbd.csv", testBoard()))

	rows := readCSV(t, filepath.Join(dir, "vbd.csv"))
	require.Len(t, rows, 3)

	// Ordered by optimal value, not board rank.
	assert.Equal(t, "Justin Jefferson", rows[1][0])
	assert.Equal(t, "120.00", rows[1][4])
	assert.Equal(t, "0.91", rows[1][6])
	assert.Equal(t, "Bijan Robinson", rows[2][0])
	assert.Equal(t, "110.00", rows[2][4])
	assert.Equal(t, "175.40", rows[2][5])
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	w := NewExcelWriter(dir, testLogger())

	require.NoError(t, w.WriteWorkbook("board.xlsx", testBoard(), testComparisons()))

	f, err := excelize.OpenFile(filepath.Join(dir, "board.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Big Board")
	assert.Contains(t, sheets, "RB")
	assert.Contains(t, sheets, "WR")
	assert.Contains(t, sheets, "ADP Comparison")
	assert.NotContains(t, sheets, "QB") // no QBs in the fixture pool

	name, err := f.GetCellValue("Big Board", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Bijan Robinson", name)

	tier, err := f.GetCellValue("ADP Comparison", "H2")
	require.NoError(t, err)
	assert.Equal(t, "Slight Buy", tier)

	rank, err := f.GetCellValue("RB", "A2")
	require.NoError(t, err)
	assert.Equal(t, "1", rank)
}

func TestWriteWorkbookWithoutComparisons(t *testing.T) {
	dir := t.TempDir()
	w := NewExcelWriter(dir, testLogger())

	require.NoError(t, w.WriteWorkbook("board.xlsx", testBoard(), nil))

	f, err := excelize.OpenFile(filepath.Join(dir, "board.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	assert.NotContains(t, f.GetSheetList(), "ADP Comparison")
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, round2(1.2345))
	assert.Equal(t, -1.23, round2(-1.2345))
	assert.Equal(t, 2.0, round2(1.996))
}
