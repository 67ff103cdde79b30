// Command bigboard runs one full valuation over the configured projection
// and market feeds and writes the report artifacts.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"bigboard/internal/config"
	"bigboard/internal/infrastructure"
	"bigboard/internal/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	leagueSize := flag.Int("league-size", 0, "override configured league size")
	projectionsDir := flag.String("projections", "", "override projections directory")
	adpFile := flag.String("adp", "", "override ADP feed file")
	outputDir := flag.String("out", "", "override reports output directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *leagueSize > 0 {
		cfg.League.Size = *leagueSize
	}
	if *projectionsDir != "" {
		cfg.Paths.ProjectionsDir = *projectionsDir
	}
	if *adpFile != "" {
		cfg.Paths.ADPFile = *adpFile
	}
	if *outputDir != "" {
		cfg.Paths.ReportsDir = *outputDir
	}

	logger := infrastructure.NewLogger(cfg.Logging, os.Stdout)
	slog.SetDefault(logger)

	logger.Info("Starting valuation run",
		"league_size", cfg.League.Size,
		"projections_dir", cfg.Paths.ProjectionsDir,
		"reports_dir", cfg.Paths.ReportsDir,
	)

	runner := pipeline.NewRunner(cfg, logger)
	result, err := runner.Run(context.Background())
	if err != nil {
		logger.Error("Valuation run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Valuation run complete",
		"run_id", result.RunID,
		"players", len(result.Board.Entries),
	)

	fmt.Printf("\nTop of the board (run %s):\n", result.RunID)
	for _, e := range result.Insights.TopOverall {
		fmt.Printf("  %3d. %-24s %-3s %-2s  score %.1f\n",
			e.UnifiedRank,
			e.Player.PlayerID,
			e.Player.Team,
			e.Player.Position,
			e.UnifiedScore,
		)
	}
	fmt.Printf("\nReports written to %s\n", cfg.Paths.ReportsDir)
}
