package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// offersCmd represents the offers command
var offersCmd = &cobra.Command{
	Use:   "offers <node-id> <country>...",
	Short: "List offers for a title across countries",
	Long: `Fetch streaming offers for a title in one or more countries with a
single API request. Countries without offers are listed as unavailable.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runOffers,
}

func init() {
	rootCmd.AddCommand(offersCmd)

	offersCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "offer filter expression")
	offersCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
}

func runOffers(cmd *cobra.Command, args []string) error {
	nodeID := args[0]
	countries := args[1:]

	offerFilterFunc, err := offerFilter()
	if err != nil {
		return err
	}

	logger.Info().
		Str("node_id", nodeID).
		Strs("countries", countries).
		Msg("Fetching offers")

	ctx := context.Background()
	offersByCountry, err := client.GetOffersForCountries(ctx, nodeID, countries, cfg.JustWatch.Language, cfg.JustWatch.BestOnly)
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(offersByCountry))
	for code := range offersByCountry {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		offers := offersByCountry[code]
		if offerFilterFunc != nil {
			offers = offerFilterFunc.Apply(offers)
		}

		fmt.Printf("\n%s\n", strings.ToUpper(code))
		fmt.Println(strings.Repeat("-", 40))
		if len(offers) == 0 {
			fmt.Println("  No offers available.")
			continue
		}
		printOffers(offers)
	}

	return nil
}
