// Package hub implements the hub command: query the home-automation hub's
// entity states and history from the command line.
package hub

import (
	"fmt"
	"time"

	"hogarboard/cmd/root"
	"hogarboard/internal/hub"

	"github.com/spf13/cobra"
)

var (
	// Cmd is the hub command
	Cmd = &cobra.Command{
		Use:   "hub ENTITY_ID",
		Short: "Query the home-automation hub for an entity's state.",
		Long: `Fetches the current state of a hub entity, e.g. "sensor.power". With
--history, also prints the entity's state samples for the given window.
Requires hub.base_url in the configuration and HUB_TOKEN in the
environment.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	historyHours int
)

func init() {
	Cmd.Flags().IntVar(&historyHours, "history", 0, "Also print state history for the past N hours")
}

func run(cmd *cobra.Command, args []string) error {
	if root.Cfg.Hub.BaseURL == "" {
		return fmt.Errorf("hub.base_url is not configured")
	}

	entityID := args[0]
	client := hub.NewRESTClient(root.Cfg.Hub.BaseURL, root.Cfg.Hub.Token, nil)

	state, err := client.State(cmd.Context(), entityID)
	if err != nil {
		return err
	}
	fmt.Printf("%s\tstate=%s\tchanged=%s\n",
		state.EntityID, state.State, state.LastChanged.Format(time.RFC3339))

	if historyHours > 0 {
		since := time.Now().Add(-time.Duration(historyHours) * time.Hour)
		points, err := client.History(cmd.Context(), entityID, since)
		if err != nil {
			return err
		}
		for _, p := range points {
			fmt.Printf("  %s\t%s\n", p.LastChanged.Format(time.RFC3339), p.State)
		}
	}
	return nil
}
