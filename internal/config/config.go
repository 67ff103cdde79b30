// Package config loads and validates the run configuration: YAML file
// first, environment overrides second, defaults from struct tags. One
// Config is built per run and threaded explicitly through the pipeline;
// nothing reads configuration globally.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete application configuration.
type Config struct {
	League     LeagueConfig     `yaml:"league" envconfig:"LEAGUE"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Simulation SimulationConfig `yaml:"simulation" envconfig:"SIMULATION"`
	Matching   MatchingConfig   `yaml:"matching" envconfig:"MATCHING"`
	Tiers      TiersConfig      `yaml:"tiers" envconfig:"TIERS"`
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
}

// LeagueConfig governs replacement baselines and rank normalization.
type LeagueConfig struct {
	Size int `yaml:"size" envconfig:"SIZE" default:"12" validate:"min=1"`
}

// PathsConfig locates the input feeds and the report output directory.
type PathsConfig struct {
	ProjectionsDir  string `yaml:"projections_dir" envconfig:"PROJECTIONS_DIR" default:"data"`
	ADPFile         string `yaml:"adp_file" envconfig:"ADP_FILE" default:"data/adp.csv"`
	TeamContextFile string `yaml:"team_context_file" envconfig:"TEAM_CONTEXT_FILE" default:"data/team_context.csv"`
	ReportsDir      string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
}

// SimulationConfig controls the simulated-outcome layer.
type SimulationConfig struct {
	Iterations int   `yaml:"iterations" envconfig:"ITERATIONS" default:"2000" validate:"min=1"`
	Seed       int64 `yaml:"seed" envconfig:"SEED" default:"1"`
}

// MatchingConfig holds the entity-resolution thresholds and market feed
// cleaning bounds. Scores are on the 0-100 similarity scale.
type MatchingConfig struct {
	Threshold       float64 `yaml:"threshold" envconfig:"THRESHOLD" default:"95" validate:"min=0,max=100"`
	StrictThreshold float64 `yaml:"strict_threshold" envconfig:"STRICT_THRESHOLD" default:"98" validate:"min=0,max=100"`
	DivergenceLimit float64 `yaml:"divergence_limit" envconfig:"DIVERGENCE_LIMIT" default:"30" validate:"min=0"`
	MinADP          float64 `yaml:"min_adp" envconfig:"MIN_ADP" default:"1"`
	MaxADP          float64 `yaml:"max_adp" envconfig:"MAX_ADP" default:"500"`
	DuplicateOffset float64 `yaml:"duplicate_offset" envconfig:"DUPLICATE_OFFSET" default:"0.1" validate:"gt=0"`
}

// TiersConfig holds the value-tier thresholds on the league-adjusted rank
// differential scale, ordered strongest buy to strongest avoid.
type TiersConfig struct {
	StrongBuy   float64 `yaml:"strong_buy" envconfig:"STRONG_BUY" default:"-1.0"`
	Buy         float64 `yaml:"buy" envconfig:"BUY" default:"-0.4"`
	SlightBuy   float64 `yaml:"slight_buy" envconfig:"SLIGHT_BUY" default:"-0.15"`
	SlightAvoid float64 `yaml:"slight_avoid" envconfig:"SLIGHT_AVOID" default:"0.8"`
	Avoid       float64 `yaml:"avoid" envconfig:"AVOID" default:"1.8"`
}

// ServerConfig configures the optional HTTP read surface.
type ServerConfig struct {
	Port         int `yaml:"port" envconfig:"PORT" default:"8090" validate:"min=1,max=65535"`
	ReadTimeout  int `yaml:"read_timeout_seconds" envconfig:"READ_TIMEOUT_SECONDS" default:"15"`
	WriteTimeout int `yaml:"write_timeout_seconds" envconfig:"WRITE_TIMEOUT_SECONDS" default:"15"`
}

// Load builds the configuration in layers: struct-tag defaults and
// environment variables (BIGBOARD_ prefix) first, then the optional YAML
// file on top, then validation. A missing file is not an error; a
// malformed one is.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	// envconfig applies the default tags even when no variables are set.
	if err := envconfig.Process("bigboard", cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// run on defaults
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks structural constraints plus the cross-field ordering the
// tag language cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	t := c.Tiers
	if !(t.StrongBuy < t.Buy && t.Buy < t.SlightBuy && t.SlightBuy < t.SlightAvoid && t.SlightAvoid < t.Avoid) {
		return fmt.Errorf("tier thresholds must be strictly increasing: %+v", t)
	}
	if c.Matching.StrictThreshold < c.Matching.Threshold {
		return fmt.Errorf("strict threshold %.1f below base threshold %.1f",
			c.Matching.StrictThreshold, c.Matching.Threshold)
	}
	if c.Matching.MaxADP <= c.Matching.MinADP {
		return fmt.Errorf("max adp %.1f must exceed min adp %.1f", c.Matching.MaxADP, c.Matching.MinADP)
	}
	return nil
}
