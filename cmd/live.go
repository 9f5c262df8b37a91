package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mak8427/poetrade/trade"
)

var livePresets []string

// liveCmd represents the live command
var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Watch one or more live searches for newly listed items",
	Long: `Open a persistent live search and print every newly listed item as the
trade site pushes it. With --preset given multiple times, each preset
runs its own session on its own connection. The command runs until
interrupted; a connection dropped by the remote end ends that session
and the command reports it rather than reconnecting silently.`,
	PreRunE: initializeApp,
	RunE:    runLive,
}

func init() {
	rootCmd.AddCommand(liveCmd)

	liveCmd.Flags().StringVarP(&itemName, "name", "n", "", "item name to watch")
	liveCmd.Flags().StringVarP(&itemType, "type", "t", "", "item base type to watch")
	liveCmd.Flags().StringVar(&statusFlag, "status", "", "seller online status (online/onlineleague/any)")
	liveCmd.Flags().StringArrayVarP(&livePresets, "preset", "p", nil, "search preset to watch (repeatable)")
}

func runLive(cmd *cobra.Command, args []string) error {
	searches, err := resolveLiveSearches()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One client per session: live connections must not share an
	// adapter.
	g, ctx := errgroup.WithContext(ctx)
	for _, scfg := range searches {
		scfg := scfg
		sessionClient, err := newTradeClient()
		if err != nil {
			return fmt.Errorf("failed to create live client: %w", err)
		}

		scfg.Live = true
		scfg.OnItems = trade.ItemHandlerFunc(func(res *trade.FetchResponse) {
			for _, item := range res.Result {
				fmt.Printf("NEW: ")
				printListing(item)
				if item.Listing.Whisper != "" {
					fmt.Printf("  %s\n", item.Listing.Whisper)
				}
			}
		})

		g.Go(func() error {
			err := sessionClient.LiveSearch(ctx, scfg)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	logger.Info().Int("sessions", len(searches)).Msg("Live searches running, Ctrl-C to stop")
	return g.Wait()
}

// resolveLiveSearches expands --preset occurrences, or falls back to
// the --name/--type pair.
func resolveLiveSearches() ([]trade.SearchConfig, error) {
	status := cfg.Search.Status
	if statusFlag != "" {
		status = statusFlag
	}

	base := trade.SearchConfig{
		Status: trade.OnlineStatus(status),
		Sort:   trade.SortPrice(cfg.Search.Sort),
	}

	if len(livePresets) == 0 {
		if itemName == "" && itemType == "" {
			return nil, fmt.Errorf("no search specified (use --name/--type or --preset)")
		}
		scfg := base
		scfg.ItemName = itemName
		scfg.ItemType = itemType
		return []trade.SearchConfig{scfg}, nil
	}

	searches := make([]trade.SearchConfig, 0, len(livePresets))
	for _, name := range livePresets {
		preset, ok := cfg.Search.Presets[name]
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", name)
		}
		scfg := base
		scfg.ItemName = preset.Name
		scfg.ItemType = preset.Type
		searches = append(searches, scfg)
	}
	return searches, nil
}
