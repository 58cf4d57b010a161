// Package watch implements the watch command: poll the sheet on an interval
// and log a one-line digest whenever the document refreshes.
package watch

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"hogarboard/cmd/root"
	"hogarboard/internal/finance"
	"hogarboard/internal/sheetfetch"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Cmd is the watch command
	Cmd = &cobra.Command{
		Use:   "watch",
		Short: "Poll the budget sheet and log a digest on every refresh.",
		Long: `Polls the configured sheet export on a fixed interval. The freshness
cache keeps ticks shorter than its TTL from reaching the network, so the
interval can be set aggressively without hammering the source. Stops on
SIGINT or SIGTERM.`,
		RunE: run,
	}

	intervalSeconds int
)

func init() {
	Cmd.Flags().IntVarP(&intervalSeconds, "interval", "i", 0, "Poll interval in seconds (overrides configuration)")
}

func run(cmd *cobra.Command, args []string) error {
	interval := time.Duration(root.Cfg.Sheet.PollIntervalSeconds) * time.Second
	if intervalSeconds > 0 {
		interval = time.Duration(intervalSeconds) * time.Second
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root.Log.WithField("interval", interval).Info("Watching sheet for changes")

	fetcher := root.NewFetcher()
	opts := root.DeriveOptions()

	tick(ctx, fetcher, opts)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			root.Log.Info("Watch stopped")
			return nil
		case <-ticker.C:
			tick(ctx, fetcher, opts)
		}
	}
}

// tick runs one fetch-and-derive pass. Failures are logged and the loop keeps
// going; a missed tick only means stale data until the next one.
func tick(ctx context.Context, fetcher *sheetfetch.Fetcher, opts finance.Options) {
	doc, ok := fetcher.Fetch(ctx, root.SourceURL())
	if !ok {
		root.Log.Warn("Sheet fetch failed, keeping previous data")
		return
	}

	rep, ok := finance.Derive(doc, opts)
	if !ok {
		root.Log.Warn("Sheet document holds no data yet")
		return
	}

	root.Log.WithFields(logrus.Fields{
		"month":        rep.ActiveMonth,
		"categories":   len(rep.Categories),
		"transactions": len(rep.Transactions),
		"netSaving":    rep.CurrentStats.NetSaving.StringFixed(2),
	}).Info("Report refreshed")
}
