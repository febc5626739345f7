package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchCount int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <title>",
	Short: "Search for titles and their streaming offers",
	Long: `Search JustWatch for titles matching the given query and list each
result with its streaming offers in the configured country.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVarP(&searchCount, "count", "n", 0, "maximum number of results")
	searchCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "offer filter expression")
	searchCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runSearch(cmd *cobra.Command, args []string) error {
	title := args[0]
	count := cfg.JustWatch.Count
	if searchCount > 0 {
		count = searchCount
	}

	offerFilterFunc, err := offerFilter()
	if err != nil {
		return err
	}

	logger.Info().
		Str("title", title).
		Str("country", cfg.JustWatch.Country).
		Int("count", count).
		Msg("Searching titles")

	ctx := context.Background()
	entries, err := client.Search(ctx, title, cfg.JustWatch.Country, cfg.JustWatch.Language, count, cfg.JustWatch.BestOnly)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No titles found.")
		return nil
	}

	fmt.Printf("\nFound %d titles:\n", len(entries))
	fmt.Println(strings.Repeat("-", 80))

	for _, entry := range entries {
		if offerFilterFunc != nil {
			entry.Offers = offerFilterFunc.Apply(entry.Offers)
		}
		printEntry(entry, true)
		fmt.Println()
	}

	return nil
}
