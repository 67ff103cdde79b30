package weighting

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LoadTeamContexts reads a team-context CSV keyed by team abbreviation with
// implied_points, win_total, and plays_per_game columns. League averages are
// computed over the loaded rows and stamped into every TeamContext, so the
// returned map is self-contained for TeamContextWeight. A malformed row is
// logged and skipped; only an unreadable file or a missing column is an error.
func LoadTeamContexts(path string, logger *slog.Logger) (map[string]TeamContext, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open team context file: %w", err)
	}
	defer f.Close()

	return parseTeamContexts(f, path, logger)
}

func parseTeamContexts(r io.Reader, source string, logger *slog.Logger) (map[string]TeamContext, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"team", "implied_points", "win_total", "plays_per_game"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("no %s column in %s", required, source)
		}
	}

	contexts := make(map[string]TeamContext)
	var sumPoints, sumWins, sumPlays float64
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("skipping malformed team context row",
				"source", source,
				"line", line,
				"error", err,
			)
			continue
		}

		team := strings.ToUpper(strings.TrimSpace(contextField(row, cols["team"])))
		points, pointsErr := strconv.ParseFloat(strings.TrimSpace(contextField(row, cols["implied_points"])), 64)
		wins, winsErr := strconv.ParseFloat(strings.TrimSpace(contextField(row, cols["win_total"])), 64)
		plays, playsErr := strconv.ParseFloat(strings.TrimSpace(contextField(row, cols["plays_per_game"])), 64)
		if team == "" || pointsErr != nil || winsErr != nil || playsErr != nil {
			logger.Warn("skipping unusable team context row",
				"source", source,
				"line", line,
				"team", team,
			)
			continue
		}

		contexts[team] = TeamContext{
			ImpliedPoints: points,
			WinTotal:      wins,
			PlaysPerGame:  plays,
		}
		sumPoints += points
		sumWins += wins
		sumPlays += plays
	}

	if n := float64(len(contexts)); n > 0 {
		avgPoints, avgWins, avgPlays := sumPoints/n, sumWins/n, sumPlays/n
		for team, tc := range contexts {
			tc.LeagueAvgPoints = avgPoints
			tc.LeagueAvgWins = avgWins
			tc.LeagueAvgPlays = avgPlays
			contexts[team] = tc
		}
	}

	logger.Info("loaded team contexts", "source", source, "teams", len(contexts))
	return contexts, nil
}

func contextField(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
