package projections

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigboard/pkg/contracts/domain"
)

func TestFantasyPoints(t *testing.T) {
	tests := []struct {
		name     string
		stats    domain.StatLine
		expected float64
	}{
		{"empty stat line", domain.StatLine{}, 0},
		{
			"rushing only",
			domain.StatLine{RushingYards: 1000, RushingTDs: 10},
			1000*0.1 + 10*6,
		},
		{
			"ppr receiver",
			domain.StatLine{Receptions: 90, ReceivingYards: 1200, ReceivingTDs: 8},
			90*1 + 1200*0.1 + 8*6,
		},
		{
			"passer",
			domain.StatLine{PassingYards: 4500, PassingTDs: 35},
			4500*0.04 + 35*4,
		},
		{
			"dual threat",
			domain.StatLine{PassingYards: 4000, PassingTDs: 30, RushingYards: 600, RushingTDs: 8},
			4000*0.04 + 30*4 + 600*0.1 + 8*6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, FantasyPoints(tt.stats), 1e-9)
		})
	}
}

const wrCSV = `Player,Team,receptions,receiving_yds,receiving_tds,rushing_yds,rushing_tds
Justin Jefferson,MIN,100,1500,10,20,0
,,,,,
CeeDee Lamb,DAL,105,"1,350",9,50,1
Bad Row,DAL,not-a-number,900,5,0,0
`

func TestParseProjections(t *testing.T) {
	l := NewLoader(nil)
	records, err := l.parse(strings.NewReader(wrCSV), domain.PositionWR, "wr.csv")
	require.NoError(t, err)
	require.Len(t, records, 3)

	jj := records[0]
	assert.Equal(t, "Justin Jefferson", jj.PlayerID)
	assert.Equal(t, "MIN", jj.Team)
	assert.Equal(t, domain.PositionWR, jj.Position)
	assert.InDelta(t, 100+1500*0.1+10*6+20*0.1, jj.RawFantasyPoints, 1e-9)

	// Thousands separators are stripped.
	assert.InDelta(t, 1350.0, records[1].Stats.ReceivingYards, 1e-9)

	// Unparseable cells fall back to 0 instead of dropping the row.
	bad := records[2]
	assert.Equal(t, "Bad Row", bad.PlayerID)
	assert.Zero(t, bad.Stats.Receptions)
	assert.InDelta(t, 900*0.1+5*6, bad.RawFantasyPoints, 1e-9)
}

func TestParseOptionalColumns(t *testing.T) {
	input := `Player,Team,rushing_yds,games,age,volatility
Bijan Robinson,ATL,1400,17,23,0.18
Nick Chubb,CLE,900,,28,
Tony Pollard,DAL,1000,12,bad,-1
`
	l := NewLoader(nil)
	records, err := l.parse(strings.NewReader(input), domain.PositionRB, "rb.csv")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, 17, records[0].GamesPlayed)
	assert.Equal(t, 23, records[0].Age)
	assert.InDelta(t, 0.18, records[0].Volatility, 1e-9)

	// Blank cells read as absent.
	assert.Zero(t, records[1].GamesPlayed)
	assert.Equal(t, 28, records[1].Age)
	assert.Zero(t, records[1].Volatility)

	// Unusable cells read as absent rather than dropping the row.
	assert.Equal(t, 12, records[2].GamesPlayed)
	assert.Zero(t, records[2].Age)
	assert.Zero(t, records[2].Volatility)
}

func TestParseMissingPlayerColumn(t *testing.T) {
	l := NewLoader(nil)
	_, err := l.parse(strings.NewReader("a,b\n1,2\n"), domain.PositionQB, "qb.csv")
	assert.Error(t, err)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()

	wrPath := filepath.Join(dir, "wr.csv")
	require.NoError(t, os.WriteFile(wrPath, []byte(wrCSV), 0o644))

	qbPath := filepath.Join(dir, "qb.csv")
	qbCSV := "Player,Team,passing_yds,passing_tds\nJosh Allen,BUF,4300,32\n"
	require.NoError(t, os.WriteFile(qbPath, []byte(qbCSV), 0o644))

	l := NewLoader(nil)
	pool, err := l.LoadFiles(map[domain.Position]string{
		domain.PositionQB: qbPath,
		domain.PositionWR: wrPath,
		domain.PositionRB: filepath.Join(dir, "missing.csv"), // skipped, not fatal
	})
	require.NoError(t, err)
	require.Len(t, pool, 4)

	// Canonical position order: QB file first, then WR; ingestion order is
	// contiguous across files.
	assert.Equal(t, "Josh Allen", pool[0].PlayerID)
	for i, p := range pool {
		assert.Equal(t, i, p.IngestOrder)
	}
}

func TestLoadFilesAllMissing(t *testing.T) {
	l := NewLoader(nil)
	_, err := l.LoadFiles(map[domain.Position]string{
		domain.PositionQB: "/nonexistent/qb.csv",
	})
	assert.Error(t, err)
}
