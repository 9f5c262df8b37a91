package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mak8427/poetrade/filter"
	"github.com/mak8427/poetrade/output"
	"github.com/mak8427/poetrade/trade"
)

var noWrite bool

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the trade site and fetch every matched listing",
	Long: `Run a search against the trade API, page through every matched result
ID in rate-limited batches of ten, and print the hydrated listings.
Results are also written to a JSON file unless --no-write is given.`,
	PreRunE: initializeApp,
	RunE:    runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&itemName, "name", "n", "", "item name, e.g. 'Tabula Rasa'")
	searchCmd.Flags().StringVarP(&itemType, "type", "t", "", "item base type, e.g. 'Simple Robe'")
	searchCmd.Flags().StringVar(&statusFlag, "status", "", "seller online status (online/onlineleague/any)")
	searchCmd.Flags().StringVarP(&presetName, "preset", "p", "", "use a search preset from config")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression applied to fetched listings")
	searchCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default from config)")
	searchCmd.Flags().BoolVar(&noWrite, "no-write", false, "skip writing results to disk")
}

func runSearch(cmd *cobra.Command, args []string) error {
	scfg, filterSource, err := resolveSearch()
	if err != nil {
		return err
	}

	logger.Info().
		Str("name", scfg.ItemName).
		Str("type", scfg.ItemType).
		Str("league", cfg.Trade.League).
		Msg("Searching trade site")

	outcome, err := client.SearchAll(cmd.Context(), scfg)
	if err != nil {
		return err
	}

	items := outcome.Items
	if filterSource != "" {
		compiled, err := filter.Compile(filterSource)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		items, err = compiled.Apply(items)
		if err != nil {
			return err
		}
		logger.Debug().
			Int("before", len(outcome.Items)).
			Int("after", len(items)).
			Msg("Applied listing filter")
	}

	if outcome.Aborted {
		logger.Warn().
			Int("failed_batch", outcome.FailedBatch).
			Msg("Fetch aborted early, results are partial")
	}

	if len(items) == 0 {
		fmt.Println("No listings found for the given search.")
		return nil
	}

	fmt.Printf("\nFound %d of %d listings:\n", len(items), outcome.Total)
	fmt.Println(strings.Repeat("-", 80))
	for _, item := range items {
		printListing(item)
	}

	if noWrite {
		return nil
	}
	path := outputPath
	if path == "" {
		path = cfg.Output.Path
	}
	if err := output.WriteItems(path, items); err != nil {
		return err
	}
	fmt.Printf("\nWrote %d listings to %s\n", len(items), path)
	return nil
}

func printListing(item trade.FetchedItem) {
	listing := item.Listing
	fmt.Printf("• %g %s — %s", listing.Price.Amount, listing.Price.Currency, listing.Account.Name)
	if listing.Account.Online != nil {
		fmt.Printf(" [ONLINE]")
	}
	fmt.Println()
	if listing.Stash.Name != "" {
		fmt.Printf("  Stash: %s (%d,%d)\n", listing.Stash.Name, listing.Stash.X, listing.Stash.Y)
	}
}
