package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stocktools/core/git"
)

// NewHooksCmd creates the hooks command group.
func NewHooksCmd() *cobra.Command {
	var runner string

	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the git hook shims for the external runner",
		Long: `Installs thin .git/hooks shims that delegate to the external
pre-commit runner. The shims contain no check logic; they exec the
runner, which reads .pre-commit-config.yaml and runs the declared
hooks. Existing foreign hooks are backed up and restored on uninstall.`,
	}

	cmd.PersistentFlags().StringVar(&runner, "runner", "pre-commit", "Runner binary the shims delegate to")

	install := &cobra.Command{
		Use:   "install [repo-path]",
		Short: "Install the git hook shims",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := resolveRepoPath(args)
			if err != nil {
				return err
			}

			manager := git.NewHookManager(runner)
			if err := manager.InstallHooks(cmd.Context(), repoPath); err != nil {
				return err
			}
			fmt.Println("✅ Hook shims installed")
			return nil
		},
	}

	uninstall := &cobra.Command{
		Use:   "uninstall [repo-path]",
		Short: "Remove the git hook shims",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repoPath, err := resolveRepoPath(args)
			if err != nil {
				return err
			}

			manager := git.NewHookManager(runner)
			if err := manager.UninstallHooks(cmd.Context(), repoPath); err != nil {
				return err
			}
			fmt.Println("✅ Hook shims removed")
			return nil
		},
	}

	cmd.AddCommand(install)
	cmd.AddCommand(uninstall)

	return cmd
}

func resolveRepoPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return os.Getwd()
}
