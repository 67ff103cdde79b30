package market

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

func TestParseFeed(t *testing.T) {
	input := `Player,Team,ADP
Josh Allen,BUF,12.4
,KC,3.0
Bijan Robinson,ATL,not-a-number
CeeDee Lamb,DAL,4.8
`
	records, err := parseFeed(strings.NewReader(input), "adp.csv", discardLogger())
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "Josh Allen", records[0].PlayerName)
	assert.Equal(t, 12.4, records[0].ADP)
	assert.Equal(t, 0, records[0].SourceOrder)
	assert.Equal(t, "CeeDee Lamb", records[1].PlayerName)
	assert.Equal(t, 1, records[1].SourceOrder)
}

func TestParseFeedAlternateHeaders(t *testing.T) {
	input := `Name,AVG
Josh Allen,12.4
`
	records, err := parseFeed(strings.NewReader(input), "adp.csv", discardLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 12.4, records[0].ADP)
}

func TestParseFeedMissingColumns(t *testing.T) {
	_, err := parseFeed(strings.NewReader("Rank,Team\n1,BUF\n"), "adp.csv", discardLogger())
	assert.ErrorContains(t, err, "no player column")

	_, err = parseFeed(strings.NewReader("Player,Team\nJosh Allen,BUF\n"), "adp.csv", discardLogger())
	assert.ErrorContains(t, err, "no adp column")
}

func TestLoadFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adp.csv")
	require.NoError(t, os.WriteFile(path, []byte("Player,ADP\nJosh Allen,12.4\n"), 0o644))

	records, err := LoadFeed(path, discardLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)

	_, err = LoadFeed(filepath.Join(t.TempDir(), "absent.csv"), discardLogger())
	assert.Error(t, err)
}
