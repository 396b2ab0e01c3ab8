package precommit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocktools/core/errors"
)

const sampleConfig = `repos:
  - repo: https://github.com/pre-commit/pre-commit-hooks
    rev: v4.4.0
    hooks:
      - id: trailing-whitespace
      - id: end-of-file-fixer
      - id: check-yaml
      - id: check-ast
  - repo: https://github.com/psf/black
    rev: 23.7.0
    hooks:
      - id: black
        language_version: python3
  - repo: https://github.com/pycqa/flake8
    rev: 6.0.0
    hooks:
      - id: flake8
        additional_dependencies:
          - flake8-docstrings
  - repo: https://github.com/pycqa/isort
    rev: 5.12.0
    hooks:
      - id: isort
        args: ["--profile", "black"]
`

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(sampleConfig))
	require.NoError(t, err)
	require.Len(t, cfg.Repos, 4)

	// Repo and hook order must be preserved exactly as declared.
	assert.Equal(t, "https://github.com/pre-commit/pre-commit-hooks", cfg.Repos[0].Repo)
	assert.Equal(t, "v4.4.0", cfg.Repos[0].Rev)
	assert.Equal(t, []string{"trailing-whitespace", "end-of-file-fixer", "check-yaml", "check-ast"},
		hookIDs(cfg.Repos[0]))

	black := cfg.Repos[1].Hooks[0]
	assert.Equal(t, "black", black.ID)
	assert.Equal(t, "python3", black.LanguageVersion)

	assert.Equal(t, []string{"flake8-docstrings"}, cfg.Repos[2].Hooks[0].AdditionalDependencies)
	assert.Equal(t, []string{"--profile", "black"}, cfg.Repos[3].Hooks[0].Args)
}

func TestLoadFromBytesRejectsUnknownOptions(t *testing.T) {
	// language_verison is a typo; strict decoding must reject it.
	_, err := LoadFromBytes([]byte(`repos:
  - repo: https://github.com/psf/black
    rev: 23.7.0
    hooks:
      - id: black
        language_verison: python3
`))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeHookConfigInvalid, errors.GetCode(err))
}

func TestLoadFromBytesEmpty(t *testing.T) {
	_, err := LoadFromBytes(nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeHookConfigInvalid, errors.GetCode(err))
}

func TestLoadFromBytesMalformedYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("repos: [\n"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeHookConfigInvalid, errors.GetCode(err))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeHookConfigNotFound, errors.GetCode(err))
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "pkg", "client")
	require.NoError(t, os.MkdirAll(nested, 0755))

	configPath := filepath.Join(root, ConfigFileName)
	require.NoError(t, os.WriteFile(configPath, []byte(sampleConfig), 0644))

	// Found from the directory holding the file
	found, err := FindConfigFile(root)
	require.NoError(t, err)
	assert.Equal(t, configPath, found)

	// Found by walking up from a nested directory
	found, err = FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, configPath, found)
}

func TestFindConfigFileNotFound(t *testing.T) {
	_, err := FindConfigFile(t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeHookConfigNotFound, errors.GetCode(err))
}

func hookIDs(r Repo) []string {
	ids := make([]string, len(r.Hooks))
	for i, h := range r.Hooks {
		ids[i] = h.ID
	}
	return ids
}
