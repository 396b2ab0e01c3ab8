package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/stocktools/core/errors"
)

// hookShimTemplate is the shim written into .git/hooks. It only
// delegates to the external pre-commit runner; no check logic lives in
// the shim itself.
const hookShimTemplate = `#!/bin/sh
# stocktools git hook - {{.HookName}}
# Auto-generated, do not edit directly

RUNNER="{{.RunnerBinary}}"

# Check if the runner is installed
if ! command -v "$RUNNER" >/dev/null 2>&1; then
    echo "{{.RunnerBinary}} not found. Skipping {{.HookName}} hook."
    exit 0
fi

exec "$RUNNER" run --hook-stage {{.HookName}}
`

// managedHooks lists the git hooks the manager installs shims for.
var managedHooks = []string{"pre-commit", "pre-push"}

// HookProvider defines the interface for git hook operations
type HookProvider interface {
	InstallHooks(ctx context.Context, repoPath string) error
	UninstallHooks(ctx context.Context, repoPath string) error
}

// HookManager installs and removes the git hook shims that hand control
// to the external runner declared by .pre-commit-config.yaml.
type HookManager struct {
	runnerBinary string
}

// Ensure it implements the interface
var _ HookProvider = (*HookManager)(nil)

// NewHookManager creates a new hook manager
func NewHookManager(runnerBinary string) *HookManager {
	if runnerBinary == "" {
		runnerBinary = "pre-commit"
	}
	return &HookManager{
		runnerBinary: runnerBinary,
	}
}

// InstallHooks installs the hook shims into repoPath's .git/hooks.
func (m *HookManager) InstallHooks(ctx context.Context, repoPath string) error {
	gitDir := filepath.Join(repoPath, ".git")
	if _, err := os.Stat(gitDir); err != nil {
		return errors.NotARepository(repoPath)
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrCodeHookInstall, "create hooks directory")
	}

	for _, hookName := range managedHooks {
		if err := m.installHook(hooksDir, hookName); err != nil {
			return errors.Wrap(err, errors.ErrCodeHookInstall, fmt.Sprintf("install %s hook", hookName)).
				WithDetail("hook", hookName)
		}
	}

	return nil
}

// UninstallHooks removes the hook shims, restoring any backed-up hooks.
func (m *HookManager) UninstallHooks(ctx context.Context, repoPath string) error {
	hooksDir := filepath.Join(repoPath, ".git", "hooks")

	for _, hookName := range managedHooks {
		hookPath := filepath.Join(hooksDir, hookName)

		// Only remove shims we own
		if !m.isManagedHook(hookPath) {
			continue
		}
		if err := os.Remove(hookPath); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, errors.ErrCodeHookInstall, fmt.Sprintf("remove %s hook", hookName)).
				WithDetail("hook", hookName)
		}

		// Restore a backed-up foreign hook if one exists
		backupPath := hookPath + ".backup"
		if _, err := os.Stat(backupPath); err == nil {
			if err := os.Rename(backupPath, hookPath); err != nil {
				return errors.Wrap(err, errors.ErrCodeHookInstall, fmt.Sprintf("restore %s hook backup", hookName)).
					WithDetail("hook", hookName)
			}
		}
	}

	return nil
}

// installHook installs a single git hook shim
func (m *HookManager) installHook(hooksDir, hookName string) error {
	hookPath := filepath.Join(hooksDir, hookName)

	// Back up an existing foreign hook before replacing it
	if _, err := os.Stat(hookPath); err == nil {
		if !m.isManagedHook(hookPath) {
			backupPath := hookPath + ".backup"
			if err := os.Rename(hookPath, backupPath); err != nil {
				return fmt.Errorf("backup existing hook: %w", err)
			}
		}
	}

	tmpl, err := template.New(hookName).Parse(hookShimTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		HookName     string
		RunnerBinary string
	}{
		HookName:     hookName,
		RunnerBinary: m.runnerBinary,
	}

	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	// Write hook file with executable permissions
	// #nosec G306 - Git hooks need to be executable
	if err := os.WriteFile(hookPath, buf.Bytes(), 0755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	return nil
}

// isManagedHook checks if a hook file is one of our shims
func (m *HookManager) isManagedHook(hookPath string) bool {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		return false
	}
	return bytes.Contains(content, []byte("stocktools git hook"))
}
