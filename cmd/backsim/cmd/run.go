package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backsim/backtest"
	"github.com/rustyeddy/backsim/config"
	"github.com/rustyeddy/backsim/internal/logger"
	"github.com/rustyeddy/backsim/journal"
	"github.com/rustyeddy/backsim/pricegen"
	"github.com/rustyeddy/backsim/sim"
	"github.com/rustyeddy/backsim/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest from a config file",
	Long: `Run the full pipeline: generate a synthetic price series, detect
signals with the configured strategies, execute them, and score the results.

Flags override the corresponding config values.

Example:
  backsim run --config simulation.yaml --generator gbm --seed 42`,
	RunE: runRun,
}

var (
	runConfigPath string
	runGenerator  string
	runSeed       int64
	runDays       int
	runSimParam   float64
	runDataDir    string
	runLogLevel   string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	runCmd.Flags().StringVarP(&runGenerator, "generator", "g", "", "price generator (random-walk, gbm, heston)")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "RNG seed (0 = from config)")
	runCmd.Flags().IntVar(&runDays, "days", 0, "simulated trading days (390 minutes each)")
	runCmd.Flags().Float64Var(&runSimParam, "sim-param", 0, "generic model parameter override")
	runCmd.Flags().StringVar(&runDataDir, "data-dir", "", "override journal output directory")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log := logger.Init("backsim", logger.ParseLevel(cfg.Logging.Level))

	rng := rand.New(rand.NewSource(cfg.Simulation.Seed))
	gen, err := pricegen.New(cfg.Simulation.Generator, cfg.Simulation.Params, rng)
	if err != nil {
		return err
	}

	var strats []strategies.Strategy
	for _, name := range cfg.Strategy.Names {
		s, err := strategies.ByName(name, cfg.Strategy.Periods)
		if err != nil {
			return err
		}
		strats = append(strats, s)
	}

	sizing, err := sim.SizingByName(cfg.Sizing.Policy, cfg.Sizing.FixedPosLimitPct, cfg.Sizing.MaxExposure)
	if err != nil {
		return err
	}

	jnl, err := openJournal(cfg)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer jnl.Close()

	_, results, err := backtest.Run(backtest.Options{
		Generator:      gen,
		Strategies:     strats,
		Symbol:         cfg.Simulation.Symbol,
		Start:          time.Now().UTC().Truncate(time.Minute),
		InitialPrice:   cfg.Simulation.InitialPrice,
		Minutes:        cfg.Simulation.Days * pricegen.MinutesPerDay,
		InitialCapital: cfg.Account.InitialCapital,
		Sizing:         sizing,
		RiskFreeRate:   cfg.Account.RiskFreeRate,
		PeriodsPerYear: cfg.Account.PeriodsPerYear,
		Seed:           cfg.Simulation.Seed,
		Journal:        jnl,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	for _, res := range results {
		fmt.Printf("\nStrategy: %s (run %s)\n", res.Strategy, res.RunID)
		fmt.Printf("  Signals: %d, Executed Trades: %d\n", len(res.Signals), len(res.Trades))
		res.Report.Print(os.Stdout)
	}
	return nil
}

// loadConfig reads the config file (or defaults) and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if runConfigPath != "" {
		cfg, err = config.LoadFromFile(runConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Default()
	}

	if runGenerator != "" {
		cfg.Simulation.Generator = runGenerator
	}
	if runSeed != 0 {
		cfg.Simulation.Seed = runSeed
	}
	if runDays != 0 {
		cfg.Simulation.Days = runDays
	}
	if cmd.Flags().Changed("sim-param") {
		cfg.Simulation.Parameter = &runSimParam
	}
	if runDataDir != "" {
		cfg.FilePaths.DataDir = runDataDir
	}
	if runLogLevel != "" {
		cfg.Logging.Level = runLogLevel
	}

	cfg.ApplyParameterOverride()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	case "sqlite":
		return journal.NewSQLite(cfg.Journal.DBPath)
	default:
		return journal.Nop{}, nil
	}
}
