package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stocktools/core/cli"
)

// NewIntradayCmd creates the intraday command
func NewIntradayCmd() *cobra.Command {
	var interval string
	var full bool
	var limit int

	cmd := &cobra.Command{
		Use:   "intraday SYMBOL",
		Short: "Show intraday price bars for a stock symbol",
		Long: `Fetch intraday price bars for a stock symbol at the given interval.

Valid intervals: 1min, 5min, 15min, 30min, 60min.

Examples:
  stock intraday AAPL
  stock intraday AAPL --interval 1min --limit 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketClient(cmd)
			if err != nil {
				return err
			}

			series, err := client.Intraday(cmd.Context(), args[0], interval, full)
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(series)
			}

			printSeries(cmd, series, limit)
			return nil
		},
	}

	cmd.Flags().StringVar(&interval, "interval", "5min", "Bar interval (1min, 5min, 15min, 30min, 60min)")
	cmd.Flags().BoolVar(&full, "full", false, "Fetch the full trailing 30 days of bars")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of most recent bars to show")

	return cmd
}
