// Package report implements the one-shot report command: fetch the sheet,
// derive the finance aggregates and print or export them.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"hogarboard/cmd/root"
	"hogarboard/internal/finance"
	"hogarboard/internal/report"

	"github.com/spf13/cobra"
)

var (
	// Cmd is the report command
	Cmd = &cobra.Command{
		Use:   "report",
		Short: "Fetch the budget sheet and print the derived report.",
		Long: `Fetches the configured sheet export, derives the active-month report
and prints it. With --output, also writes categories.csv and history.csv
to the given directory.`,
		RunE: run,
	}

	showTransactions bool
)

func init() {
	Cmd.Flags().BoolVarP(&showTransactions, "transactions", "t", false, "List the transactions associated with each category")
}

func run(cmd *cobra.Command, args []string) error {
	fetcher := root.NewFetcher()
	doc, ok := fetcher.Fetch(cmd.Context(), root.SourceURL())
	if !ok {
		return fmt.Errorf("could not fetch sheet document from %q", root.SourceURL())
	}

	rep, ok := finance.Derive(doc, root.DeriveOptions())
	if !ok {
		return fmt.Errorf("sheet document holds no data to report on")
	}

	printReport(rep)

	if root.SharedFlags.Output != "" {
		dir := root.SharedFlags.Output
		if err := report.WriteCategoriesToCSV(rep.Categories, filepath.Join(dir, "categories.csv")); err != nil {
			return err
		}
		if err := report.WriteHistoryToCSV(rep.History, filepath.Join(dir, "history.csv")); err != nil {
			return err
		}
		root.Log.WithField("dir", dir).Info("Report exported")
	}
	return nil
}

func printReport(rep *finance.Report) {
	fmt.Printf("Active month: %s\n", rep.ActiveMonth)
	fmt.Printf("Net saving:   %s (%d%% of income)\n",
		rep.CurrentStats.NetSaving.StringFixed(2), rep.SavingsEfficiencyPct)
	fmt.Printf("Expenses:     %s of %s planned (%d%%)\n",
		rep.CurrentStats.ActualExpense.StringFixed(2),
		rep.CurrentStats.PlannedExpense.StringFixed(2),
		rep.ExpenseExecutionPct)
	if !rep.NetWorth.IsZero() {
		fmt.Printf("Net worth:    %s\n", rep.NetWorth.StringFixed(2))
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tBUDGET\tACTUAL\tREMAINING\tUSED")
	for _, c := range rep.Categories {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\n",
			c.Name, c.Budget.StringFixed(2), c.Actual.StringFixed(2),
			c.Remaining.StringFixed(2), c.PercentUsed)
		if showTransactions {
			for _, tx := range c.Transactions {
				fmt.Fprintf(w, "  %s\t%s\t%s\t\t\n", tx.Date, tx.Description, tx.Amount.StringFixed(2))
			}
		}
	}
	_ = w.Flush()

	if len(rep.CustomKPIs) > 0 {
		fmt.Println()
		for _, kpi := range rep.CustomKPIs {
			fmt.Printf("%s: %s %s\n", kpi.Title, kpi.Value.StringFixed(2), kpi.Unit)
		}
	}
}
