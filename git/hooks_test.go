package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktools/core/errors"
)

func TestHookManager_InstallHooks(t *testing.T) {
	tmpDir := t.TempDir()
	gitDir := filepath.Join(tmpDir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(gitDir, 0755))

	manager := NewHookManager("pre-commit")

	// Install hooks
	err := manager.InstallHooks(context.Background(), tmpDir)
	require.NoError(t, err)

	// Check hooks exist
	for _, hook := range managedHooks {
		hookPath := filepath.Join(gitDir, hook)
		assert.FileExists(t, hookPath)

		// Check it's executable
		info, err := os.Stat(hookPath)
		require.NoError(t, err)
		assert.True(t, info.Mode()&0100 != 0, "hook should be executable")

		// Check content
		content, err := os.ReadFile(hookPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "stocktools git hook")
		assert.Contains(t, string(content), hook)
		assert.Contains(t, string(content), "pre-commit")
	}
}

func TestHookManager_InstallHooksNotARepo(t *testing.T) {
	manager := NewHookManager("")

	err := manager.InstallHooks(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeGitNotRepo, errors.GetCode(err))
}

func TestHookManager_UninstallHooks(t *testing.T) {
	tmpDir := t.TempDir()
	gitDir := filepath.Join(tmpDir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(gitDir, 0755))

	manager := NewHookManager("")

	// Install then uninstall
	require.NoError(t, manager.InstallHooks(context.Background(), tmpDir))
	require.NoError(t, manager.UninstallHooks(context.Background(), tmpDir))

	// Check hooks removed
	for _, hook := range managedHooks {
		assert.NoFileExists(t, filepath.Join(gitDir, hook))
	}
}

func TestHookManager_BacksUpForeignHooks(t *testing.T) {
	tmpDir := t.TempDir()
	gitDir := filepath.Join(tmpDir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(gitDir, 0755))

	// A pre-existing hook that isn't ours
	foreign := []byte("#!/bin/sh\necho custom hook\n")
	foreignPath := filepath.Join(gitDir, "pre-commit")
	require.NoError(t, os.WriteFile(foreignPath, foreign, 0755))

	manager := NewHookManager("")
	require.NoError(t, manager.InstallHooks(context.Background(), tmpDir))

	// The foreign hook is preserved as a backup
	backup, err := os.ReadFile(foreignPath + ".backup")
	require.NoError(t, err)
	assert.Equal(t, foreign, backup)

	// Uninstalling restores it
	require.NoError(t, manager.UninstallHooks(context.Background(), tmpDir))
	restored, err := os.ReadFile(foreignPath)
	require.NoError(t, err)
	assert.Equal(t, foreign, restored)
	assert.NoFileExists(t, foreignPath+".backup")
}

func TestHookManager_UninstallLeavesForeignHooks(t *testing.T) {
	tmpDir := t.TempDir()
	gitDir := filepath.Join(tmpDir, ".git", "hooks")
	require.NoError(t, os.MkdirAll(gitDir, 0755))

	foreign := []byte("#!/bin/sh\necho custom hook\n")
	foreignPath := filepath.Join(gitDir, "pre-commit")
	require.NoError(t, os.WriteFile(foreignPath, foreign, 0755))

	manager := NewHookManager("")
	require.NoError(t, manager.UninstallHooks(context.Background(), tmpDir))

	// Never removed a hook we didn't write
	assert.FileExists(t, foreignPath)
}
