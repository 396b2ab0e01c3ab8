package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stocktools/core/errors"
)

// overrideNames lists the override file names checked next to the
// project configuration, applied in order.
var overrideNames = []string{
	"stock.override.yml",
	"stock.override.yaml",
	".stock.override.yml",
	".stock.override.yaml",
}

// LoadWithOverrides loads configuration with override files
func LoadWithOverrides(baseFile string) (*Config, error) {
	config, err := Load(baseFile)
	if err != nil {
		return nil, err
	}

	return applyOverrides(config, filepath.Dir(baseFile))
}

// applyOverrides merges any override files found in dir into config.
func applyOverrides(config *Config, dir string) (*Config, error) {
	for _, name := range overrideNames {
		overrideFile := filepath.Join(dir, name)
		if _, err := os.Stat(overrideFile); err != nil {
			continue
		}

		data, err := os.ReadFile(overrideFile)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read override file").
				WithDetail("path", overrideFile)
		}

		// Expand environment variables
		expanded := expandEnvVars(string(data))

		var override Config
		if err := yaml.Unmarshal([]byte(expanded), &override); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse override file").
				WithDetail("path", overrideFile)
		}

		config = mergeConfigs(config, &override)
	}

	return config, nil
}

// mergeConfigs merges override configuration into base
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Version != "" {
		result.Version = override.Version
	}

	result.API = mergeAPI(result.API, override.API)

	// Merge extensions; an override section wins wholesale unless both
	// sides are maps, in which case they merge key by key.
	if override.Extensions != nil {
		if result.Extensions == nil {
			result.Extensions = make(map[string]interface{})
		}
		for key, value := range override.Extensions {
			if baseValue, exists := result.Extensions[key]; exists {
				baseMap, baseOK := baseValue.(map[string]interface{})
				overrideMap, overrideOK := value.(map[string]interface{})
				if baseOK && overrideOK {
					result.Extensions[key] = deepMerge(baseMap, overrideMap)
					continue
				}
			}
			result.Extensions[key] = value
		}
	}

	return &result
}

func mergeAPI(base, override APIConfig) APIConfig {
	result := base
	if override.Key != "" {
		result.Key = override.Key
	}
	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.TimeoutSeconds != 0 {
		result.TimeoutSeconds = override.TimeoutSeconds
	}
	if override.MaxRetries != 0 {
		result.MaxRetries = override.MaxRetries
	}
	return result
}

// deepMerge recursively merges two generic maps.
func deepMerge(base, override map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(base))
	for key, value := range base {
		result[key] = value
	}
	for key, value := range override {
		if baseValue, exists := result[key]; exists {
			baseMap, baseOK := baseValue.(map[string]interface{})
			overrideMap, overrideOK := value.(map[string]interface{})
			if baseOK && overrideOK {
				result[key] = deepMerge(baseMap, overrideMap)
				continue
			}
		}
		result[key] = value
	}
	return result
}
