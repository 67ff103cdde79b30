package projections

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"bigboard/pkg/contracts/domain"
)

// Loader reads per-position projection CSV files into PlayerRecords.
// A malformed row is logged and skipped; only an unreadable file or a file
// with no usable header is an error.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a projection loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// statColumns maps recognized header names to stat line fields.
var statColumns = map[string]func(*domain.StatLine, float64){
	"rushing_yds":   func(s *domain.StatLine, v float64) { s.RushingYards = v },
	"rushing_tds":   func(s *domain.StatLine, v float64) { s.RushingTDs = v },
	"receptions":    func(s *domain.StatLine, v float64) { s.Receptions = v },
	"receiving_yds": func(s *domain.StatLine, v float64) { s.ReceivingYards = v },
	"receiving_tds": func(s *domain.StatLine, v float64) { s.ReceivingTDs = v },
	"passing_yds":   func(s *domain.StatLine, v float64) { s.PassingYards = v },
	"passing_tds":   func(s *domain.StatLine, v float64) { s.PassingTDs = v },
}

// LoadFiles reads one CSV per position and returns the combined pool with
// ingestion order assigned across the whole load. Positions iterate in
// canonical order so repeat runs over the same files produce identical
// pools. A missing file for one position is logged and skipped.
func (l *Loader) LoadFiles(files map[domain.Position]string) ([]domain.PlayerRecord, error) {
	var pool []domain.PlayerRecord

	for _, pos := range domain.Positions {
		path, ok := files[pos]
		if !ok {
			continue
		}
		records, err := l.LoadFile(path, pos)
		if err != nil {
			l.logger.Warn("skipping projection file",
				"position", string(pos),
				"path", path,
				"error", err,
			)
			continue
		}
		pool = append(pool, records...)
	}

	if len(pool) == 0 {
		return nil, fmt.Errorf("no projections loaded from %d files", len(files))
	}

	for i := range pool {
		pool[i].IngestOrder = i
	}

	l.logger.Info("loaded projection pool", "players", len(pool))
	return pool, nil
}

// LoadFile reads one position's projection CSV.
func (l *Loader) LoadFile(path string, pos domain.Position) ([]domain.PlayerRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open projections: %w", err)
	}
	defer f.Close()

	return l.parse(f, pos, path)
}

func (l *Loader) parse(r io.Reader, pos domain.Position, source string) ([]domain.PlayerRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // projection exports pad rows inconsistently

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	playerCol, ok := cols["player"]
	if !ok {
		return nil, fmt.Errorf("no player column in %s", source)
	}
	teamCol, hasTeam := cols["team"]

	var records []domain.PlayerRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			l.logger.Warn("skipping malformed projection row",
				"source", source,
				"line", line,
				"error", err,
			)
			continue
		}

		name := strings.TrimSpace(field(row, playerCol))
		if name == "" {
			continue // blank spacer rows are expected in these exports
		}

		rec := domain.PlayerRecord{
			PlayerID: name,
			Position: pos,
		}
		if hasTeam {
			rec.Team = strings.ToUpper(strings.TrimSpace(field(row, teamCol)))
		}

		for col, set := range statColumns {
			idx, ok := cols[col]
			if !ok {
				continue
			}
			raw := strings.ReplaceAll(strings.TrimSpace(field(row, idx)), ",", "")
			if raw == "" {
				continue // missing stat reads as 0
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				l.logger.Warn("unparseable stat value, using 0",
					"source", source,
					"line", line,
					"column", col,
					"value", raw,
				)
				continue
			}
			set(&rec.Stats, v)
		}

		if v, ok := intField(row, cols, "games", l.logger, source, line); ok {
			rec.GamesPlayed = v
		}
		if v, ok := intField(row, cols, "age", l.logger, source, line); ok {
			rec.Age = v
		}
		if idx, ok := cols["volatility"]; ok {
			raw := strings.TrimSpace(field(row, idx))
			if v, err := strconv.ParseFloat(raw, 64); err == nil && v > 0 {
				rec.Volatility = v
			}
		}

		rec.RawFantasyPoints = FantasyPoints(rec.Stats)
		records = append(records, rec)
	}

	return records, nil
}

// intField reads an optional integer column, returning ok=false when the
// column is absent or the cell unusable.
func intField(row []string, cols map[string]int, name string, logger *slog.Logger, source string, line int) (int, bool) {
	idx, ok := cols[name]
	if !ok {
		return 0, false
	}
	raw := strings.TrimSpace(field(row, idx))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		logger.Warn("unparseable value, ignoring",
			"source", source,
			"line", line,
			"column", name,
			"value", raw,
		)
		return 0, false
	}
	return v, true
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
