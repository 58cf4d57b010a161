// Package cell implements the cell command: resolve a single spreadsheet
// address against the fetched sheet and print its raw and numeric value.
package cell

import (
	"fmt"

	"hogarboard/cmd/root"
	"hogarboard/internal/numcoerce"
	"hogarboard/internal/sheetgrid"

	"github.com/spf13/cobra"
)

// Cmd is the cell command
var Cmd = &cobra.Command{
	Use:   "cell ADDRESS",
	Short: "Resolve one cell address, e.g. \"B7\", against the sheet.",
	Long: `Fetches the configured sheet export and prints the raw text and the
coerced numeric value of the cell at the given address. Out-of-range
addresses resolve to an empty cell, which coerces to zero.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func run(cmd *cobra.Command, args []string) error {
	address := args[0]
	if _, _, ok := sheetgrid.ParseAddress(address); !ok {
		return fmt.Errorf("invalid cell address %q (expected letters then digits, e.g. B7)", address)
	}

	fetcher := root.NewFetcher()
	doc, ok := fetcher.Fetch(cmd.Context(), root.SourceURL())
	if !ok {
		return fmt.Errorf("could not fetch sheet document from %q", root.SourceURL())
	}

	raw := doc.Cell(address)
	fmt.Printf("%s\traw=%q\tvalue=%s\n", address, raw, numcoerce.Parse(raw).String())
	return nil
}
