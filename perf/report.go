package perf

import (
	"fmt"
	"io"
)

// Print writes a human-readable summary of the report. Undefined metrics
// render as "n/a" so they are never mistaken for zero.
func (r Report) Print(w io.Writer) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Performance Report")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w, "Overall")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial Capital:    %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "Final Capital:      %.2f\n", r.FinalCapital)
	fmt.Fprintf(w, "Total Return:       %.2f%%\n", r.TotalReturn*100)
	fmt.Fprintf(w, "Annualized Return:  %.2f%%\n", r.AnnualizedReturn*100)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk-Adjusted")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Sharpe Ratio:       %s\n", r.SharpeRatio)
	fmt.Fprintf(w, "Sortino Ratio:      %s\n", r.SortinoRatio)
	fmt.Fprintf(w, "Calmar Ratio:       %s\n", r.CalmarRatio)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Risk")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Max Drawdown:       %.2f%%\n", r.MaxDrawdown*100)
	fmt.Fprintf(w, "Volatility:         %s\n", r.Volatility)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:             %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Win Rate:           %s\n", r.WinRate)
	fmt.Fprintf(w, "Profit Factor:      %s\n", r.ProfitFactor)
	fmt.Fprintf(w, "Avg Trade Return:   %s\n", r.AverageTradeReturn)
	fmt.Fprintln(w)
}
