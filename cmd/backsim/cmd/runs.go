package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/backsim/journal"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List scored runs stored in a sqlite journal",
	Long: `Print the run summaries recorded by previous 'backsim run' invocations
that used the sqlite journal.

Example:
  backsim runs --db backsim.db`,
	RunE: runRuns,
}

var runsDBPath string

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().StringVar(&runsDBPath, "db", "backsim.db", "path to sqlite journal database")
}

func runRuns(cmd *cobra.Command, args []string) error {
	jnl, err := journal.NewSQLite(runsDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer jnl.Close()

	summaries, err := jnl.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Printf("no runs recorded in %s\n", runsDBPath)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "run\tcreated\tgenerator\tstrategy\tseed\ttotal return\tsharpe\tmax drawdown")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.4f\t%s\t%.4f\n",
			s.RunID, s.Created.Format("2006-01-02 15:04"), s.Generator, s.Strategy,
			s.Seed, s.Report.TotalReturn, s.Report.SharpeRatio, s.Report.MaxDrawdown)
	}
	return w.Flush()
}
