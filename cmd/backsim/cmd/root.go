package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backsim",
	Short: "A synthetic-market strategy backtesting simulator",
	Long: `Backsim simulates trading strategies against synthetic price paths.

It provides tools for:
  - Generating minute-level price series (random walk, GBM, Heston jump-diffusion)
  - Detecting moving-average and MACD crossover signals
  - Executing signals under all-in or fixed-fractional sizing
  - Scoring equity curves with Sharpe, Sortino, Calmar and drawdown metrics
  - Journaling trades, equity curves and run summaries to CSV or SQLite`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
