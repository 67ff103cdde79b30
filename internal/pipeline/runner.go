// Package pipeline orchestrates a full valuation run: ingest the
// projection pool, compute replacement baselines and position aggregates,
// fan the annotation stages out per position, score and rank the board,
// and compare it against the market feed.
//
// Aggregates and baselines are computed over the whole pool before the
// fan-out, and rank assignment is a single sequential reduction, so a run
// is deterministic regardless of worker scheduling.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"bigboard/internal/board"
	"bigboard/internal/config"
	"bigboard/internal/exporter"
	"bigboard/internal/market"
	"bigboard/internal/projections"
	"bigboard/internal/replacement"
	"bigboard/internal/simulation"
	"bigboard/internal/statmetrics"
	"bigboard/internal/weighting"
	"bigboard/pkg/contracts/domain"
)

// Result is the complete output of one valuation run.
type Result struct {
	RunID       string
	Board       *domain.RankedBoard
	Comparisons []domain.MarketComparison // nil when no market feed was supplied
	Insights    board.Insights
}

// Runner executes valuation runs from a fixed configuration.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger

	// teamContexts is keyed by team abbreviation; players on teams without
	// a context row keep their raw projection.
	teamContexts map[string]weighting.TeamContext
}

// NewRunner creates a runner.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Run loads the configured inputs, executes the valuation stages, and
// writes the report artifacts. A missing or unreadable market feed
// downgrades the run to board-only; an empty projection pool is the one
// terminal error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	loader := projections.NewLoader(r.logger)
	files := make(map[domain.Position]string, len(domain.Positions))
	for _, pos := range domain.Positions {
		files[pos] = filepath.Join(r.cfg.Paths.ProjectionsDir,
			fmt.Sprintf("%s_projections.csv", strings.ToLower(string(pos))))
	}
	players, err := loader.LoadFiles(files)
	if err != nil {
		return nil, fmt.Errorf("load projections: %w", err)
	}

	if r.cfg.Paths.TeamContextFile != "" {
		contexts, err := weighting.LoadTeamContexts(r.cfg.Paths.TeamContextFile, r.logger)
		if err != nil {
			r.logger.Warn("team context file unavailable, skipping context weighting",
				"path", r.cfg.Paths.TeamContextFile,
				"error", err,
			)
		} else {
			r.teamContexts = contexts
		}
	}

	var feed []domain.MarketRecord
	if r.cfg.Paths.ADPFile != "" {
		feed, err = market.LoadFeed(r.cfg.Paths.ADPFile, r.logger)
		if err != nil {
			r.logger.Warn("market feed unavailable, skipping comparison",
				"path", r.cfg.Paths.ADPFile,
				"error", err,
			)
			feed = nil
		}
	}

	result, err := r.Execute(ctx, players, feed)
	if err != nil {
		return nil, err
	}

	if err := r.export(result); err != nil {
		return nil, fmt.Errorf("export reports: %w", err)
	}
	return result, nil
}

// Execute runs the valuation stages over an already-loaded pool. feed may
// be nil for a board-only run.
func (r *Runner) Execute(ctx context.Context, players []domain.PlayerRecord, feed []domain.MarketRecord) (*Result, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("empty player pool")
	}

	runID := uuid.NewString()
	logger := r.logger.With(slog.String("run_id", runID))
	logger.InfoContext(ctx, "starting valuation run",
		slog.Int("players", len(players)),
		slog.Int("market_records", len(feed)),
		slog.Int("league_size", r.cfg.League.Size),
	)

	r.applyWeighting(players)

	// Pool-wide statistics before any fan-out.
	aggregates := statmetrics.ComputeAggregates(players)
	baselines := replacement.ComputeBaselines(players, r.cfg.League.Size, logger)
	values := replacement.Annotate(players, baselines)

	analyzer := statmetrics.NewAnalyzer(statmetrics.DefaultParams(), logger)
	simulator := simulation.NewSimulator(simulation.Config{
		Iterations: r.cfg.Simulation.Iterations,
		Seed:       r.cfg.Simulation.Seed,
	}, logger)

	metrics := make([]statmetrics.Metrics, len(players))
	outcomes := make([]domain.OutcomeSummary, len(players))

	byPos := make(map[domain.Position][]int, len(domain.Positions))
	for i, p := range players {
		byPos[p.Position] = append(byPos[p.Position], i)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, indices := range byPos {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			shard := make([]domain.PlayerRecord, len(indices))
			for k, i := range indices {
				shard[k] = players[i]
			}
			shardMetrics := analyzer.Annotate(shard, aggregates)
			shardOutcomes := simulator.Annotate(shard, aggregates)
			for k, i := range indices {
				metrics[i] = shardMetrics[k]
				outcomes[i] = shardOutcomes[k]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("annotation stage: %w", err)
	}

	annotations := make([]domain.Annotations, len(players))
	for i := range players {
		annotations[i] = mergeAnnotations(values[i], metrics[i], outcomes[i])
	}

	scorer := board.NewScorer(board.DefaultConfig(), logger)
	ranked, err := scorer.Score(ctx, players, annotations)
	if err != nil {
		return nil, fmt.Errorf("score board: %w", err)
	}
	ranked.RunID = runID
	ranked.LeagueSize = r.cfg.League.Size
	ranked.Baselines = baselines

	result := &Result{
		RunID:    runID,
		Board:    ranked,
		Insights: board.BuildInsights(ranked),
	}

	if feed != nil {
		classifier := market.NewClassifier(r.marketConfig(), logger)
		result.Comparisons = classifier.Compare(ctx, ranked, feed)
	}

	logger.InfoContext(ctx, "valuation run complete",
		slog.Int("ranked", len(ranked.Entries)),
		slog.Bool("market_compared", result.Comparisons != nil),
	)
	return result, nil
}

// applyWeighting fills the availability weight for players whose feed
// carried games-played data, then scales projections by the team context
// weight for players on teams with a context row. Players without either
// input keep their neutral defaults.
func (r *Runner) applyWeighting(players []domain.PlayerRecord) {
	weighted := 0
	contextWeighted := 0
	for i, p := range players {
		if p.InjuryWeight == 0 && p.GamesPlayed > 0 {
			players[i].InjuryWeight = weighting.InjuryWeight(p.GamesPlayed, p.Age, p.Position)
			weighted++
		}
		if p.EfficiencyAdjustedPoints == 0 {
			if tc, ok := r.teamContexts[p.Team]; ok {
				players[i].EfficiencyAdjustedPoints = p.RawFantasyPoints * weighting.TeamContextWeight(tc, p.Position)
				contextWeighted++
			}
		}
	}
	if weighted > 0 {
		r.logger.Info("applied availability weighting", "players", weighted)
	}
	if contextWeighted > 0 {
		r.logger.Info("applied team context weighting", "players", contextWeighted)
	}
}

func (r *Runner) marketConfig() market.Config {
	cfg := market.DefaultConfig()
	cfg.LeagueSize = r.cfg.League.Size
	cfg.Resolver.Threshold = r.cfg.Matching.Threshold
	cfg.Resolver.StrictThreshold = r.cfg.Matching.StrictThreshold
	cfg.Resolver.DivergenceLimit = r.cfg.Matching.DivergenceLimit
	cfg.Thresholds = market.TierThresholds{
		StrongBuy:   r.cfg.Tiers.StrongBuy,
		Buy:         r.cfg.Tiers.Buy,
		SlightBuy:   r.cfg.Tiers.SlightBuy,
		SlightAvoid: r.cfg.Tiers.SlightAvoid,
		Avoid:       r.cfg.Tiers.Avoid,
	}
	cfg.MinADP = r.cfg.Matching.MinADP
	cfg.MaxADP = r.cfg.Matching.MaxADP
	cfg.DuplicateOffset = r.cfg.Matching.DuplicateOffset
	return cfg
}

func mergeAnnotations(v replacement.Values, m statmetrics.Metrics, out domain.OutcomeSummary) domain.Annotations {
	return domain.Annotations{
		VOR:             v.VOR,
		OpportunityCost: v.OpportunityCost,
		OptimalValue:    v.OptimalValue,

		ZScore:                   m.ZScore,
		PositionPercentile:       m.PositionPercentile,
		RiskScore:                m.RiskScore,
		UpsidePotential:          m.UpsidePotential,
		RiskAdjustedValue:        m.RiskAdjustedValue,
		BayesianProjection:       m.BayesianProjection,
		ProjectionUncertainty:    m.ProjectionUncertainty,
		ConfidenceInterval:       m.ConfidenceInterval,
		BayesianValue:            m.BayesianValue,
		ConsistencyScore:         m.ConsistencyScore,
		ConsistencyAdjustedValue: m.ConsistencyAdjustedValue,

		Outcome: out,
	}
}

// export writes the report artifacts for a finished run.
func (r *Runner) export(result *Result) error {
	csvWriter := exporter.NewCSVWriter(r.cfg.Paths.ReportsDir, r.logger)
	if err := csvWriter.WriteBoard("big_board.csv", result.Board); err != nil {
		return err
	}
	if err := csvWriter.WriteVBDReport("vbd_report.csv", result.Board); err != nil {
		return err
	}
	if result.Comparisons != nil {
		if err := csvWriter.WriteMarketComparison("adp_comparison.csv", result.Comparisons); err != nil {
			return err
		}
	}

	excelWriter := exporter.NewExcelWriter(r.cfg.Paths.ReportsDir, r.logger)
	return excelWriter.WriteWorkbook("big_board.xlsx", result.Board, result.Comparisons)
}
