// Package summary implements the summary command: derive the current report
// and ask the configured AI model for a short conversational digest.
package summary

import (
	"context"
	"fmt"
	"time"

	"hogarboard/cmd/root"
	"hogarboard/internal/finance"
	"hogarboard/internal/logging"
	"hogarboard/internal/summary"

	"github.com/spf13/cobra"
)

// Cmd is the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Generate an AI digest of the current budget report.",
	Long: `Fetches the sheet, derives the active-month report and sends it to the
configured Gemini model for a short natural-language summary. Requires
ai.enabled in the configuration and GEMINI_API_KEY in the environment.`,
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	if !root.Cfg.AI.Enabled {
		return fmt.Errorf("AI summaries are disabled; set ai.enabled in the configuration")
	}

	fetcher := root.NewFetcher()
	doc, ok := fetcher.Fetch(cmd.Context(), root.SourceURL())
	if !ok {
		return fmt.Errorf("could not fetch sheet document from %q", root.SourceURL())
	}

	rep, ok := finance.Derive(doc, root.DeriveOptions())
	if !ok {
		return fmt.Errorf("sheet document holds no data to summarize")
	}

	ctx := cmd.Context()
	if root.Cfg.AI.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(root.Cfg.AI.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	s, err := summary.NewGeminiSummarizer(ctx, root.Cfg.AI.APIKey, root.Cfg.AI.Model, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close AI client")
		}
	}()

	digest, err := s.Summarize(ctx, rep)
	if err != nil {
		return err
	}

	fmt.Println(digest)
	return nil
}
