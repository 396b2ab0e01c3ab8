package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stocktools/core/cli"
)

// NewOverviewCmd creates the overview command
func NewOverviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "overview SYMBOL",
		Short: "Show company fundamentals for a stock symbol",
		Long: `Fetch company information and key fundamentals for a stock symbol.

Examples:
  stock overview AAPL
  stock overview IBM --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketClient(cmd)
			if err != nil {
				return err
			}

			ov, err := client.CompanyOverview(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(ov)
			}

			fmt.Printf("%s  %s\n", ov.Symbol, ov.Name)
			fmt.Printf("  Exchange:    %s (%s)\n", ov.Exchange, ov.Currency)
			fmt.Printf("  Sector:      %s / %s\n", ov.Sector, ov.Industry)
			fmt.Printf("  Country:     %s\n", ov.Country)
			fmt.Printf("  Market cap:  %s\n", ov.MarketCapitalization)
			fmt.Printf("  P/E ratio:   %s\n", ov.PERatio)
			fmt.Printf("  EPS:         %s\n", ov.EPS)
			fmt.Printf("  Div yield:   %s\n", ov.DividendYield)
			fmt.Printf("  52w range:   %s - %s\n", ov.FiftyTwoWeekLow, ov.FiftyTwoWeekHigh)
			if ov.Description != "" {
				fmt.Printf("\n%s\n", ov.Description)
			}
			return nil
		},
	}

	return cmd
}
