package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeConfigs(t *testing.T) {
	base := &Config{
		Version: "1.0",
		Name:    "stock-agents",
		API: APIConfig{
			Key:            "base-key",
			TimeoutSeconds: 30,
		},
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{
				"level":  "info",
				"format": map[string]interface{}{"preset": "default"},
			},
		},
	}

	override := &Config{
		API: APIConfig{
			Key: "override-key",
		},
		Extensions: map[string]interface{}{
			"logging": map[string]interface{}{
				"level": "debug",
			},
		},
	}

	merged := mergeConfigs(base, override)

	// Overridden fields win, untouched fields survive
	assert.Equal(t, "override-key", merged.API.Key)
	assert.Equal(t, 30, merged.API.TimeoutSeconds)
	assert.Equal(t, "stock-agents", merged.Name)

	// Extension maps merge key by key
	logging := merged.Extensions["logging"].(map[string]interface{})
	assert.Equal(t, "debug", logging["level"])
	format := logging["format"].(map[string]interface{})
	assert.Equal(t, "default", format["preset"])
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()

	base := filepath.Join(dir, "stock.yml")
	require.NoError(t, os.WriteFile(base, []byte(`
version: "1.0"
api:
  key: base-key
  timeout_seconds: 10
`), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stock.override.yml"), []byte(`
api:
  key: local-key
`), 0644))

	cfg, err := LoadWithOverrides(base)
	require.NoError(t, err)
	assert.Equal(t, "local-key", cfg.API.Key)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
}
