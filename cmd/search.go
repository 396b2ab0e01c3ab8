package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stocktools/core/cli"
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search KEYWORDS...",
		Short: "Search for stock symbols matching keywords",
		Long: `Search for stock symbols and company names matching the given keywords.

Examples:
  stock search apple
  stock search british airways --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newMarketClient(cmd)
			if err != nil {
				return err
			}

			matches, err := client.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if cli.GetOptions(cmd).JSONOutput {
				return printJSON(matches)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SYMBOL\tNAME\tTYPE\tREGION\tCURRENCY\tSCORE")
			for _, m := range matches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					m.Symbol, m.Name, m.Type, m.Region, m.Currency, m.MatchScore)
			}
			return w.Flush()
		},
	}

	return cmd
}
