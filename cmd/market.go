package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stocktools/core/cli"
	"github.com/stocktools/core/marketdata"
)

// NewMarketCmd creates the market command group
func NewMarketCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "market",
		Short: "Market-wide information",
		Long:  `Commands for market-wide information: venue status and top movers.`,
	}

	cmd.AddCommand(newMarketStatusCmd())
	cmd.AddCommand(newMarketMoversCmd())

	return cmd
}

func newMarketStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show open/closed status of global market venues",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketClient(cmd)
			if err != nil {
				return err
			}

			status, err := client.MarketStatus(cmd.Context())
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(status)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "REGION\tTYPE\tEXCHANGES\tHOURS\tSTATUS")
			for _, m := range status.Markets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s-%s\t%s\n",
					m.Region, m.MarketType, m.PrimaryExchanges,
					m.LocalOpen, m.LocalClose, m.CurrentStatus)
			}
			return w.Flush()
		},
	}
}

func newMarketMoversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movers",
		Short: "Show top gainers, losers and most active US tickers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketClient(cmd)
			if err != nil {
				return err
			}

			movers, err := client.TopMovers(cmd.Context())
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(movers)
			}

			fmt.Printf("Last updated: %s\n", movers.LastUpdated)
			printMovers(cmd, "Top gainers", movers.TopGainers)
			printMovers(cmd, "Top losers", movers.TopLosers)
			printMovers(cmd, "Most active", movers.MostActivelyTraded)
			return nil
		},
	}
}

func printMovers(cmd *cobra.Command, title string, movers []marketdata.Mover) {
	fmt.Printf("\n%s:\n", title)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TICKER\tPRICE\tCHANGE\tCHANGE %\tVOLUME")
	for _, m := range movers {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			m.Ticker, m.Price, m.ChangeAmount, m.ChangePercentage, m.Volume)
	}
	w.Flush()
}
