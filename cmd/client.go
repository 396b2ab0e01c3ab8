package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stocktools/core/cli"
	"github.com/stocktools/core/config"
	"github.com/stocktools/core/errors"
	"github.com/stocktools/core/marketdata"
)

// newMarketClient builds a market data client from the resolved
// configuration. A missing stock.yml is fine as long as STOCK_API_KEY
// is set.
func newMarketClient(cmd *cobra.Command) (*marketdata.Client, error) {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeConfigNotFound) {
			return nil, err
		}
		cfg = &config.Config{}
		cfg.SetDefaults()
		if key := os.Getenv("STOCK_API_KEY"); key != "" {
			cfg.API.Key = key
		}
	}

	return marketdata.NewClient(cfg.API)
}

// printJSON renders v as indented JSON on stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
