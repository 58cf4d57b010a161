// Package summary turns a derived finance report into a short conversational
// digest for the dashboard's AI panel.
package summary

import (
	"context"
	"fmt"
	"strings"

	"hogarboard/internal/finance"
)

// Summarizer is the port the dashboard consumes. Implementations call an
// external AI service; tests use a fake.
type Summarizer interface {
	// Summarize produces a short natural-language digest of the report.
	Summarize(ctx context.Context, report *finance.Report) (string, error)
}

// BuildPrompt renders the report into the prompt sent to the model. Exported
// so tests can assert on the exact content without a live client.
func BuildPrompt(report *finance.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a household finance assistant. Summarize this month's budget in 3 short sentences, in a friendly tone.\n\n")
	fmt.Fprintf(&b, "Active month: %s\n", report.ActiveMonth)
	fmt.Fprintf(&b, "Net saving: %s (%d%% of income)\n",
		report.CurrentStats.NetSaving.StringFixed(2), report.SavingsEfficiencyPct)
	fmt.Fprintf(&b, "Expense execution: %d%% of plan\n", report.ExpenseExecutionPct)

	if len(report.Categories) > 0 {
		b.WriteString("Categories by utilization:\n")
		for _, c := range report.Categories {
			fmt.Fprintf(&b, "- %s: %s of %s (%d%%)\n",
				c.Name, c.Actual.StringFixed(2), c.Budget.StringFixed(2), c.PercentUsed)
		}
	}

	if !report.NetWorth.IsZero() {
		fmt.Fprintf(&b, "Net worth: %s\n", report.NetWorth.StringFixed(2))
	}

	b.WriteString("\nMention the category closest to or over its budget first.")
	return b.String()
}
