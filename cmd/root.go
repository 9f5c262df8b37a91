package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mak8427/poetrade/config"
	"github.com/mak8427/poetrade/trade"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *trade.Client

	// Command flags
	leagueFlag string
	itemName   string
	itemType   string
	statusFlag string
	presetName string
	filterExpr string
	outputPath string

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "poetrade",
	Short: "Search, watch and whisper on the Path of Exile trade site",
	Long: `poetrade is a CLI client for the Path of Exile trade API. It runs
searches, fetches every matched listing in rate-limited batches, keeps
persistent live searches open for newly listed items, and can whisper a
listing's seller.`,
}

// SetVersion records the build metadata injected by the linker.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&leagueFlag, "league", "", "league to query (overrides config)")
}

// initializeApp loads the configuration and builds the trade client.
// Commands that talk to the API set it as their PreRunE; commands like
// update run without it.
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Override league from command line if specified
	if leagueFlag != "" {
		cfg.Trade.League = leagueFlag
	}

	client, err = newTradeClient()
	if err != nil {
		return fmt.Errorf("failed to create trade client: %w", err)
	}

	return nil
}

// newTradeClient builds a client from the loaded configuration. Live
// sessions call it again so each session owns its own connection.
func newTradeClient() (*trade.Client, error) {
	return trade.NewClient(cfg.Trade.League, cfg.Trade.SessionID, logger,
		trade.WithBaseURL(cfg.Trade.URL),
		trade.WithUserAgent(cfg.Trade.UserAgent),
		trade.WithFetchDelay(cfg.Trade.FetchDelay),
	)
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// resolveSearch builds a search configuration from flags, falling back
// to a named preset from the config file.
func resolveSearch() (trade.SearchConfig, string, error) {
	name, typ, filter := itemName, itemType, filterExpr

	if presetName != "" {
		preset, ok := cfg.Search.Presets[presetName]
		if !ok {
			return trade.SearchConfig{}, "", fmt.Errorf("preset '%s' not found in config", presetName)
		}
		if name == "" {
			name = preset.Name
		}
		if typ == "" {
			typ = preset.Type
		}
		if filter == "" {
			filter = preset.Filter
		}
	}

	if name == "" && typ == "" {
		return trade.SearchConfig{}, "", fmt.Errorf("no item name or type specified (use --name/--type or --preset)")
	}

	status := cfg.Search.Status
	if statusFlag != "" {
		status = statusFlag
	}

	return trade.SearchConfig{
		ItemName: name,
		ItemType: typ,
		Status:   trade.OnlineStatus(status),
		Sort:     trade.SortPrice(cfg.Search.Sort),
	}, filter, nil
}
