// Package root contains the root command for the application
package root

import (
	"net/http"
	"time"

	"hogarboard/internal/config"
	"hogarboard/internal/finance"
	"hogarboard/internal/hub"
	"hogarboard/internal/report"
	"hogarboard/internal/sheetfetch"
	"hogarboard/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	URL    string
	Month  string
	Output string
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun has executed.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "hogarboard",
		Short: "A home-operations dashboard core: ingest a budget sheet and derive finance widgets.",
		Long: `hogarboard fetches a spreadsheet export over HTTP, parses it into a cell
grid and derives the budget aggregates the dashboard renders: per-category
budget vs actual for the active month, transactions, savings history and
custom single-cell KPIs.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to hogarboard!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			var err error
			Cfg, err = config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}

			// Set the configured logger for all leaf packages
			sheetfetch.SetLogger(Log)
			finance.SetLogger(Log)
			report.SetLogger(Log)
			store.SetLogger(Log)
			hub.SetLogger(Log)
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.URL, "url", "u", "", "Sheet export URL (overrides configuration)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Month, "month", "m", "", "Active month override, e.g. \"mayo\"")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory for CSV export")
}

// SourceURL returns the sheet URL: the flag when set, otherwise the
// configured value.
func SourceURL() string {
	if SharedFlags.URL != "" {
		return SharedFlags.URL
	}
	return Cfg.Sheet.URL
}

// NewFetcher builds a fetcher with the configured freshness TTL.
func NewFetcher() *sheetfetch.Fetcher {
	ttl := time.Duration(Cfg.Sheet.CacheTTLSeconds) * time.Second
	cache := sheetfetch.NewDocumentCache(ttl, nil)
	return sheetfetch.NewFetcher(&http.Client{Timeout: 30 * time.Second}, cache, nil)
}

// DeriveOptions assembles derivation options from configuration, flags and
// the widget store.
func DeriveOptions() finance.Options {
	widgetStore := store.NewWidgetStore(Cfg.Widgets.File)
	widgets, err := widgetStore.LoadWidgets()
	if err != nil {
		Log.Warnf("Failed to load widget definitions: %v", err)
	}

	return finance.Options{
		ActiveMonth:  SharedFlags.Month,
		RolloverDay:  Cfg.Finance.RolloverDay,
		TxRowCap:     Cfg.Finance.TransactionRowCap,
		Columns:      Cfg.Finance.Columns,
		NetWorthCell: Cfg.Finance.NetWorthCell,
		Widgets:      widgets,
	}
}
