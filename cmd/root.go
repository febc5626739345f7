package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/justwatch/config"
	"github.com/s0up4200/justwatch/filter"
	"github.com/s0up4200/justwatch/justwatch"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *justwatch.Client

	// Command flags
	countryFlag  string
	languageFlag string
	bestOnly     bool
	filterExpr   string
	preset       string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "justwatch",
	Short: "Query streaming availability from JustWatch",
	Long: `justwatch is a CLI for the JustWatch GraphQL API. It searches titles,
looks up title details and lists streaming offers across countries.`,
	PersistentPreRunE: initializeApp,
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
	rootCmd.PersistentFlags().StringVar(&countryFlag, "country", "", "2-letter country code for offers")
	rootCmd.PersistentFlags().StringVar(&languageFlag, "language", "", "language of responses")
	rootCmd.PersistentFlags().BoolVar(&bestOnly, "best-only", true, "return only the best offer per package")
}

// initializeApp initializes the configuration, logger and API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging)

	// Command line flags override config values
	if countryFlag != "" {
		cfg.JustWatch.Country = countryFlag
	}
	if languageFlag != "" {
		cfg.JustWatch.Language = languageFlag
	}
	if cmd.Flags().Changed("best-only") {
		cfg.JustWatch.BestOnly = bestOnly
	}

	opts := []justwatch.Option{
		justwatch.WithTimeout(30 * time.Second),
	}
	if cfg.JustWatch.Endpoint != "" {
		opts = append(opts, justwatch.WithEndpoint(cfg.JustWatch.Endpoint))
	}
	client = justwatch.NewClient(logger, opts...)

	return nil
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

	// Console format; disable color when stderr is not a terminal
	noColor := !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd())
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// offerFilter compiles the offer filter from flags and config.
// Priority: command line filter > preset > config default. A nil filter
// means no filtering.
func offerFilter() (*filter.Filter, error) {
	expression := filterExpr
	if expression == "" && preset != "" {
		presetExpr, ok := cfg.Filter.Presets[preset]
		if !ok {
			return nil, fmt.Errorf("preset '%s' not found in config", preset)
		}
		expression = presetExpr
	}
	if expression == "" {
		expression = cfg.Filter.DefaultExpression
	}
	if expression == "" {
		return nil, nil
	}

	compiled, err := filter.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return compiled, nil
}

// printOffers renders one line per offer.
func printOffers(offers []justwatch.Offer) {
	for _, offer := range offers {
		fmt.Printf("  • %s [%s/%s]", offer.Package.Name, offer.MonetizationType, offer.PresentationType)
		if offer.PriceString != nil {
			fmt.Printf(" %s", *offer.PriceString)
		}
		if offer.AvailableTo != nil {
			fmt.Printf(" (until %s)", *offer.AvailableTo)
		}
		fmt.Println()
		if offer.URL != "" {
			fmt.Printf("    %s\n", offer.URL)
		}
	}
}

// printEntry renders a title with its metadata and offers.
func printEntry(entry justwatch.MediaEntry, showOffers bool) {
	fmt.Printf("• %s (%d) [%s]\n", entry.Title, entry.ReleaseYear, entry.EntryID)
	if entry.ShortDescription != "" {
		fmt.Printf("  %s\n", entry.ShortDescription)
	}
	if len(entry.Genres) > 0 {
		fmt.Printf("  Genres: %s\n", strings.Join(entry.Genres, ", "))
	}
	if entry.IMDBID != nil {
		fmt.Printf("  IMDB: %s\n", *entry.IMDBID)
	}
	fmt.Printf("  %s\n", entry.URL)
	if showOffers && len(entry.Offers) > 0 {
		fmt.Printf("  Offers:\n")
		printOffers(entry.Offers)
	}
}
