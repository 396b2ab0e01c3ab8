package main

import (
	"os"

	"github.com/stocktools/core/cli"
	"github.com/stocktools/core/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"stock",
		"Stock market data and hook configuration tools",
	)
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	// Add subcommands
	rootCmd.AddCommand(cli.NewVersionCommand("stock"))
	rootCmd.AddCommand(cmd.NewValidateCmd())
	rootCmd.AddCommand(cmd.NewSchemaCmd())
	rootCmd.AddCommand(cmd.NewHooksCmd())
	rootCmd.AddCommand(cmd.NewQuoteCmd())
	rootCmd.AddCommand(cmd.NewSearchCmd())
	rootCmd.AddCommand(cmd.NewDailyCmd())
	rootCmd.AddCommand(cmd.NewIntradayCmd())
	rootCmd.AddCommand(cmd.NewOverviewCmd())
	rootCmd.AddCommand(cmd.NewMarketCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		cli.NewErrorHandler(verbose).Handle(err)
		os.Exit(1)
	}
}
