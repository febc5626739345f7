package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// titleCmd represents the title command
var titleCmd = &cobra.Command{
	Use:   "title <node-id>",
	Short: "Show details and offers for a single title",
	Long: `Look up a title by its JustWatch node ID and show its metadata and
streaming offers in the configured country.`,
	Args: cobra.ExactArgs(1),
	RunE: runTitle,
}

func init() {
	rootCmd.AddCommand(titleCmd)

	titleCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "offer filter expression")
	titleCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runTitle(cmd *cobra.Command, args []string) error {
	nodeID := args[0]

	offerFilterFunc, err := offerFilter()
	if err != nil {
		return err
	}

	logger.Info().
		Str("node_id", nodeID).
		Str("country", cfg.JustWatch.Country).
		Msg("Fetching title details")

	ctx := context.Background()
	entry, err := client.GetTitle(ctx, nodeID, cfg.JustWatch.Country, cfg.JustWatch.Language, cfg.JustWatch.BestOnly)
	if err != nil {
		return err
	}

	if entry == nil {
		fmt.Printf("No title found for node ID %s.\n", nodeID)
		return nil
	}

	if offerFilterFunc != nil {
		entry.Offers = offerFilterFunc.Apply(entry.Offers)
	}
	printEntry(*entry, true)

	return nil
}
