package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stocktools/core/precommit"
)

// NewSchemaCmd creates the schema command.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for hook configuration files",
		Long: `Prints the JSON Schema that 'stock validate' checks hook
configurations against. Useful for wiring editor validation
(yaml-language-server) to .pre-commit-config.yaml files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := precommit.GenerateSchema()
			if err != nil {
				return fmt.Errorf("failed to generate schema: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
