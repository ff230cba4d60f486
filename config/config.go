// Package config loads and validates simulation configuration from YAML
// (with a JSON fallback based on file contents).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/backsim/pricegen"
	"github.com/rustyeddy/backsim/strategies"
)

// Config represents the complete backtest configuration.
type Config struct {
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Strategy   StrategyConfig   `json:"strategy" yaml:"strategy"`
	Account    AccountConfig    `json:"account" yaml:"account"`
	Sizing     SizingConfig     `json:"sizing" yaml:"sizing"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
	FilePaths  FilePathsConfig  `json:"file_paths" yaml:"file_paths"`
}

// SimulationConfig selects the price model and its parameters.
type SimulationConfig struct {
	Generator    string  `json:"generator" yaml:"generator"`
	Symbol       string  `json:"symbol" yaml:"symbol"`
	Seed         int64   `json:"seed" yaml:"seed"`
	Days         int     `json:"days" yaml:"days"`
	InitialPrice float64 `json:"initial_price" yaml:"initial_price"`

	// Parameter is a generic, model-specific override applied on top of the
	// named fields: volatility for random-walk, sigma for gbm, jump_lambda
	// for heston.
	Parameter *float64 `json:"parameter,omitempty" yaml:"parameter,omitempty"`

	Params pricegen.Params `json:"params" yaml:"params"`
}

// StrategyConfig selects the signal detectors and their windows.
type StrategyConfig struct {
	Names   []string           `json:"names" yaml:"names"`
	Periods strategies.Periods `json:"periods" yaml:"periods"`
}

// AccountConfig holds capital and scoring parameters.
type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	RiskFreeRate   float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
	PeriodsPerYear int     `json:"periods_per_year" yaml:"periods_per_year"`
}

// SizingConfig selects the order-sizing policy.
type SizingConfig struct {
	Policy string `json:"policy" yaml:"policy"`
	// FixedPosLimitPct sizes each BUY to this fraction of initial capital.
	FixedPosLimitPct float64 `json:"fixed_pos_limit_percentage" yaml:"fixed_pos_limit_percentage"`
	// MaxExposure caps deployed capital for the fixed-fractional policy.
	MaxExposure float64 `json:"max_exposure" yaml:"max_exposure"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LoggingConfig struct {
	Level string `json:"level" yaml:"level"` // debug, info, warn, error
}

type FilePathsConfig struct {
	DataDir string `json:"data_dir,omitempty" yaml:"data_dir,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.ApplyParameterOverride()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyParameterOverride folds the generic simulation.parameter into the
// model-specific field it stands for.
func (c *Config) ApplyParameterOverride() {
	if c.Simulation.Parameter == nil {
		return
	}
	v := *c.Simulation.Parameter
	switch c.Simulation.Generator {
	case "gbm":
		c.Simulation.Params.Sigma = v
	case "heston":
		c.Simulation.Params.JumpLambda = v
	default:
		c.Simulation.Params.Volatility = v
	}
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Simulation.Generator == "" {
		return fmt.Errorf("simulation.generator is required")
	}
	if c.Simulation.Days <= 0 {
		return fmt.Errorf("simulation.days must be positive")
	}
	if c.Simulation.InitialPrice <= 0 {
		return fmt.Errorf("simulation.initial_price must be positive")
	}
	if len(c.Strategy.Names) == 0 {
		return fmt.Errorf("strategy.names must name at least one strategy")
	}
	p := c.Strategy.Periods
	if p.Fast <= 0 || p.Slow <= 0 || p.Signal <= 0 {
		return fmt.Errorf("strategy.periods must all be positive")
	}
	if p.Fast >= p.Slow {
		return fmt.Errorf("strategy.periods.fast must be shorter than slow")
	}
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Account.PeriodsPerYear <= 0 {
		return fmt.Errorf("account.periods_per_year must be positive")
	}
	switch c.Sizing.Policy {
	case "all-in", "allin", "":
	case "fixed-fractional", "fixed":
		if c.Sizing.FixedPosLimitPct <= 0 || c.Sizing.FixedPosLimitPct > 1 {
			return fmt.Errorf("sizing.fixed_pos_limit_percentage must be in (0, 1]")
		}
		if c.Sizing.MaxExposure <= 0 {
			return fmt.Errorf("sizing.max_exposure must be positive")
		}
	default:
		return fmt.Errorf("unknown sizing.policy %q", c.Sizing.Policy)
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Generator:    "random-walk",
			Symbol:       "TEST",
			Seed:         1,
			Days:         3,
			InitialPrice: 100,
			Params: pricegen.Params{
				Volatility: 0.5,
				Drift:      0.1,
				Band:       0.25,
				Mu:         0.05,
				Sigma:      0.2,
				Kappa:      1.5,
				Theta:      0.04,
				SigmaV:     0.3,
				Rho:        -0.7,
				JumpLambda: 10,
				JumpMean:   0,
				JumpVol:    0.02,
			},
		},
		Strategy: StrategyConfig{
			Names:   []string{"ma-cross"},
			Periods: strategies.Periods{Fast: 10, Slow: 20, Signal: 9},
		},
		Account: AccountConfig{
			InitialCapital: 100000,
			RiskFreeRate:   0.0,
			PeriodsPerYear: 252,
		},
		Sizing: SizingConfig{
			Policy:           "all-in",
			FixedPosLimitPct: 0.1,
			MaxExposure:      50000,
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "./trades.csv",
			EquityFile: "./equity.csv",
		},
		Logging:   LoggingConfig{Level: "info"},
		FilePaths: FilePathsConfig{DataDir: "./data"},
	}
}
