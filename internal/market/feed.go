package market

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

// adpColumns lists accepted header names for the ADP value, in preference
// order. Feed exports disagree on the label.
var adpColumns = []string{"adp", "avg", "average_pick", "overall"}

// LoadFeed reads a market-consensus CSV into MarketRecords, preserving feed
// order in SourceOrder. A malformed row is logged and skipped; only an
// unreadable file or a missing header is an error. Records are returned raw;
// callers clean them with CleanFeed before classification.
func LoadFeed(path string, logger *slog.Logger) ([]domain.MarketRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open market feed: %w", err)
	}
	defer f.Close()

	return parseFeed(f, path, logger)
}

func parseFeed(r io.Reader, source string, logger *slog.Logger) ([]domain.MarketRecord, error) {
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

	nameCol, ok := cols["player"]
	if !ok {
		if nameCol, ok = cols["name"]; !ok {
			return nil, fmt.Errorf("no player column in %s", source)
		}
	}

	adpCol := -1
	for _, c := range adpColumns {
		if idx, ok := cols[c]; ok {
			adpCol = idx
			break
		}
	}
	if adpCol < 0 {
		return nil, fmt.Errorf("no adp column in %s", source)
	}

	var records []domain.MarketRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Warn("skipping malformed market row",
				"source", source,
				"line", line,
				"error", err,
			)
			continue
		}

		name := strings.TrimSpace(feedField(row, nameCol))
		raw := strings.TrimSpace(feedField(row, adpCol))
		adp, parseErr := strconv.ParseFloat(raw, 64)
		if name == "" || raw == "" || parseErr != nil {
			logger.Warn("skipping unusable market row",
				"source", source,
				"line", line,
				"player", name,
				"adp", raw,
			)
			continue
		}

		records = append(records, domain.MarketRecord{
			PlayerName:  name,
			ADP:         adp,
			SourceOrder: len(records),
		})
	}

	logger.Info("loaded market feed", "source", source, "records", len(records))
	return records, nil
}

func feedField(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
