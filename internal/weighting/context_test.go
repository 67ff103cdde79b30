package weighting

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseTeamContexts(t *testing.T) {
	input := `Team,Implied_Points,Win_Total,Plays_Per_Game
buf,26,11,65
DAL,22,9,63
,20,8,60
ATL,not-a-number,7,61
NYJ,18,7,62
`
	contexts, err := parseTeamContexts(strings.NewReader(input), "team_context.csv", discardLogger())
	require.NoError(t, err)
	require.Len(t, contexts, 3)

	buf, ok := contexts["BUF"]
	require.True(t, ok, "team keys are upper-cased")
	assert.Equal(t, 26.0, buf.ImpliedPoints)
	assert.Equal(t, 11.0, buf.WinTotal)
	assert.Equal(t, 65.0, buf.PlaysPerGame)

	// League averages span the loaded rows and appear on every context.
	assert.InDelta(t, (26.0+22.0+18.0)/3, buf.LeagueAvgPoints, 1e-9)
	assert.InDelta(t, (11.0+9.0+7.0)/3, buf.LeagueAvgWins, 1e-9)
	assert.InDelta(t, (65.0+63.0+62.0)/3, buf.LeagueAvgPlays, 1e-9)
	assert.Equal(t, buf.LeagueAvgPoints, contexts["NYJ"].LeagueAvgPoints)
}

func TestParseTeamContextsMissingColumns(t *testing.T) {
	_, err := parseTeamContexts(strings.NewReader("Team,Win_Total\nBUF,11\n"), "team_context.csv", discardLogger())
	assert.ErrorContains(t, err, "no implied_points column")
}

func TestLoadTeamContexts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "team_context.csv")
	data := "Team,Implied_Points,Win_Total,Plays_Per_Game\nBUF,26,11,65\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	contexts, err := LoadTeamContexts(path, discardLogger())
	require.NoError(t, err)
	require.Len(t, contexts, 1)

	_, err = LoadTeamContexts(filepath.Join(t.TempDir(), "absent.csv"), discardLogger())
	assert.Error(t, err)
}
