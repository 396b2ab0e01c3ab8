package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stocktools/core/cli"
	"github.com/stocktools/core/errors"
	"github.com/stocktools/core/precommit"
	"github.com/stocktools/core/schema"
)

// NewValidateCmd creates the validate command for hook configurations.
func NewValidateCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a pre-commit hook configuration file",
		Long: `Checks that a .pre-commit-config.yaml parses, matches the
configuration schema, and satisfies the structural rules: every repo
pins a well-formed rev, every hook has a unique non-empty id, and all
patterns and stages are recognized. Hooks are never executed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveHookConfigPath(args)
			if err != nil {
				return err
			}

			if !watch {
				if err := validateHookConfig(path); err != nil {
					return err
				}
				fmt.Printf("✅ %s is valid\n", path)
				return nil
			}

			// In watch mode validation failures are reported inline and
			// the loop keeps running.
			handler := cli.NewErrorHandler(cli.GetOptions(cmd).Verbose)
			if err := validateHookConfig(path); err != nil {
				handler.Handle(err)
			} else {
				fmt.Printf("✅ %s is valid\n", path)
			}

			return watchHookConfig(cmd, path, handler)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-validate whenever the file changes")

	return cmd
}

// resolveHookConfigPath picks the config path from args or by searching
// upward from the current directory.
func resolveHookConfigPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to get current directory")
	}
	return precommit.FindConfigFile(cwd)
}

// validateHookConfig runs the schema check and the structural rules
// against the file at path.
func validateHookConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.HookConfigNotFound(path)
		}
		return errors.Wrap(err, errors.ErrCodeHookConfigInvalid, "failed to read hook configuration").
			WithDetail("path", path)
	}

	// Schema check on the raw document shape first; it produces the most
	// precise location information for malformed entries.
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeHookConfigInvalid, "failed to parse hook configuration").
			WithDetail("path", path)
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to load configuration schema")
	}
	if err := validator.Validate(raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeHookValidation, "schema validation failed").
			WithDetail("path", path)
	}

	cfg, err := precommit.LoadFromBytes(data)
	if err != nil {
		return err
	}

	return cfg.Validate()
}

// watchHookConfig blocks re-validating path on every change until interrupted.
func watchHookConfig(cmd *cobra.Command, path string, handler *cli.ErrorHandler) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := precommit.NewWatcher(path, 200, func(changed string) {
		if err := validateHookConfig(changed); err != nil {
			handler.Handle(err)
			return
		}
		fmt.Printf("✅ %s is valid\n", changed)
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to watch hook configuration")
	}
	defer watcher.Close()

	fmt.Printf("Watching %s for changes (ctrl-c to stop)\n", path)
	watcher.Start(ctx)
	return nil
}
