package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backsim/backtest"
	"github.com/rustyeddy/backsim/internal/logger"
	"github.com/rustyeddy/backsim/journal"
	"github.com/rustyeddy/backsim/perf"
	"github.com/rustyeddy/backsim/pricegen"
	"github.com/rustyeddy/backsim/sim"
	"github.com/rustyeddy/backsim/strategies"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the same backtest across a range of seeds",
	Long: `Re-run the full generate/signal/execute/score pipeline once per seed
and print a comparison table. Each run gets its own generator and
executor instances so results are independent and reproducible.

Examples:
  backsim sweep --seeds 20
  backsim sweep --config my.yaml --seeds 50 --generator gbm`,
	RunE: runSweep,
}

var sweepSeeds int

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	sweepCmd.Flags().StringVarP(&runGenerator, "generator", "g", "", "price generator (random-walk, gbm, heston)")
	sweepCmd.Flags().IntVar(&sweepSeeds, "seeds", 10, "number of seeds to sweep (1..N)")
	sweepCmd.Flags().IntVar(&runDays, "days", 0, "simulated trading days (390 minutes each)")
	sweepCmd.Flags().Float64Var(&runSimParam, "sim-param", 0, "generic model parameter override")
	sweepCmd.Flags().StringVar(&runLogLevel, "log-level", "", "log level (debug, info, warn, error)")
}

type sweepRow struct {
	seed   int64
	report perf.Report
	trades int
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepSeeds < 1 {
		return fmt.Errorf("--seeds must be at least 1, got %d", sweepSeeds)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.Init("backsim", logger.ParseLevel(cfg.Logging.Level))

	start := time.Now().UTC().Truncate(time.Minute)
	rows := make(map[string][]sweepRow, len(cfg.Strategy.Names))

	for seed := int64(1); seed <= int64(sweepSeeds); seed++ {
		rng := rand.New(rand.NewSource(seed))
		gen, err := pricegen.New(cfg.Simulation.Generator, cfg.Simulation.Params, rng)
		if err != nil {
			return err
		}

		strats := make([]strategies.Strategy, 0, len(cfg.Strategy.Names))
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

		_, results, err := backtest.Run(backtest.Options{
			Generator:      gen,
			Strategies:     strats,
			Symbol:         cfg.Simulation.Symbol,
			Start:          start,
			InitialPrice:   cfg.Simulation.InitialPrice,
			Minutes:        cfg.Simulation.Days * pricegen.MinutesPerDay,
			InitialCapital: cfg.Account.InitialCapital,
			Sizing:         sizing,
			RiskFreeRate:   cfg.Account.RiskFreeRate,
			PeriodsPerYear: cfg.Account.PeriodsPerYear,
			Seed:           seed,
			Journal:        journal.Nop{},
			Logger:         log,
		})
		if err != nil {
			return fmt.Errorf("sweep seed %d: %w", seed, err)
		}

		for _, res := range results {
			rows[res.Strategy] = append(rows[res.Strategy], sweepRow{
				seed:   seed,
				report: res.Report,
				trades: len(res.Trades),
			})
		}
	}

	printSweep(rows)
	return nil
}

func printSweep(rows map[string][]sweepRow) {
	for name, runs := range rows {
		fmt.Printf("\n%s (%d seeds)\n", name, len(runs))

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "seed\ttotal return\tannualized\tsharpe\tmax drawdown\ttrades")
		var sumReturn float64
		for _, r := range runs {
			fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%s\t%.4f\t%d\n",
				r.seed, r.report.TotalReturn, r.report.AnnualizedReturn,
				r.report.SharpeRatio, r.report.MaxDrawdown, r.trades)
			sumReturn += r.report.TotalReturn
		}
		w.Flush()
		fmt.Printf("mean total return: %.4f\n", sumReturn/float64(len(runs)))
	}
}
