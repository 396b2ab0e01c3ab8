package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stocktools/core/cli"
	"github.com/stocktools/core/marketdata"
)

// NewDailyCmd creates the daily command
func NewDailyCmd() *cobra.Command {
	var full bool
	var limit int

	cmd := &cobra.Command{
		Use:   "daily SYMBOL",
		Short: "Show daily price history for a stock symbol",
		Long: `Fetch the daily time series for a stock symbol. By default the API
returns the most recent 100 trading days; --full requests the complete
history.

Examples:
  stock daily AAPL
  stock daily AAPL --full --limit 30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketClient(cmd)
			if err != nil {
				return err
			}

			series, err := client.Daily(cmd.Context(), args[0], full)
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

	cmd.Flags().BoolVar(&full, "full", false, "Fetch the full price history")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of most recent bars to show")

	return cmd
}

// printSeries renders the most recent bars of a time series as a table.
func printSeries(cmd *cobra.Command, series *marketdata.TimeSeries, limit int) {
	stamps := make([]string, 0, len(series.Bars))
	for ts := range series.Bars {
		stamps = append(stamps, ts)
	}
	// Timestamps are ISO-formatted, so lexical order is chronological.
	sort.Sort(sort.Reverse(sort.StringSlice(stamps)))
	if limit > 0 && len(stamps) > limit {
		stamps = stamps[:limit]
	}

	fmt.Printf("%s  (last refreshed %s)\n", series.Meta.Symbol, series.Meta.LastRefreshed)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tOPEN\tHIGH\tLOW\tCLOSE\tVOLUME")
	for _, ts := range stamps {
		bar := series.Bars[ts]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ts, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}
	w.Flush()
}
