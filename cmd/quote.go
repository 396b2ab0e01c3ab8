package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stocktools/core/cli"
)

// NewQuoteCmd creates the quote command
func NewQuoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote SYMBOL",
		Short: "Show the latest quote for a stock symbol",
		Long: `Fetch the latest global quote for a stock symbol.

Examples:
  stock quote AAPL
  stock quote msft --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketClient(cmd)
			if err != nil {
				return err
			}

			quote, err := client.Quote(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(quote)
			}

			fmt.Printf("%s  %s (%s)\n", quote.Symbol, quote.Price, quote.ChangePercent)
			fmt.Printf("  Open:           %s\n", quote.Open)
			fmt.Printf("  High:           %s\n", quote.High)
			fmt.Printf("  Low:            %s\n", quote.Low)
			fmt.Printf("  Previous close: %s\n", quote.PreviousClose)
			fmt.Printf("  Change:         %s\n", quote.Change)
			fmt.Printf("  Volume:         %s\n", quote.Volume)
			fmt.Printf("  Trading day:    %s\n", quote.LatestTradingDay)
			return nil
		},
	}

	return cmd
}
