package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/stocktools/core/errors"
)

// ConfigSource identifies where a configuration layer came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceGlobal   ConfigSource = "global"
	SourceProject  ConfigSource = "project"
	SourceOverride ConfigSource = "override"
)

// OverrideSource pairs an override config with the file it came from.
type OverrideSource struct {
	Path   string
	Config *Config
}

// LayeredConfig holds the raw configuration from each source file,
// as well as the final merged configuration, for analysis purposes.
type LayeredConfig struct {
	Default   *Config // Config with only default values applied.
	Global    *Config // Raw config from the global file.
	Project   *Config // Raw config from the project file.
	Overrides []OverrideSource
	Final     *Config // The fully merged and validated config.
	FilePaths map[ConfigSource]string
}

// LoadLayered finds and loads all configuration layers (global, project,
// overrides) without merging them, for analysis purposes. It also
// computes the final merged config.
func LoadLayered(startDir string) (*LayeredConfig, error) {
	layered := &LayeredConfig{
		Overrides: make([]OverrideSource, 0),
		FilePaths: make(map[ConfigSource]string),
	}

	defaultCfg := &Config{}
	defaultCfg.SetDefaults()
	layered.Default = defaultCfg

	// Global layer (optional)
	globalPath := getXDGConfigPath()
	if globalPath != "" {
		if _, err := os.Stat(globalPath); err == nil {
			if globalData, err := os.ReadFile(globalPath); err == nil {
				expanded := expandEnvVars(string(globalData))
				var globalConfig Config
				if err := yaml.Unmarshal([]byte(expanded), &globalConfig); err == nil {
					layered.Global = &globalConfig
					layered.FilePaths[SourceGlobal] = globalPath
				}
			}
		}
	}

	// Project layer (required)
	projectPath, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}
	projectData, err := os.ReadFile(projectPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read project config").
			WithDetail("path", projectPath)
	}
	expanded := expandEnvVars(string(projectData))
	var projectConfig Config
	if strings.HasSuffix(projectPath, ".toml") {
		err = toml.Unmarshal([]byte(expanded), &projectConfig)
	} else {
		err = yaml.Unmarshal([]byte(expanded), &projectConfig)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse project config").
			WithDetail("path", projectPath)
	}
	layered.Project = &projectConfig
	layered.FilePaths[SourceProject] = projectPath

	// Override layers (optional)
	projectDir := filepath.Dir(projectPath)
	for _, name := range overrideNames {
		overridePath := filepath.Join(projectDir, name)
		if _, err := os.Stat(overridePath); err != nil {
			continue
		}
		overrideData, err := os.ReadFile(overridePath)
		if err != nil {
			continue // Skip unreadable override files
		}
		var overrideConfig Config
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(overrideData))), &overrideConfig); err == nil {
			layered.Overrides = append(layered.Overrides, OverrideSource{
				Path:   overridePath,
				Config: &overrideConfig,
			})
		}
	}

	// Compute the final merged config the same way LoadFrom does.
	finalConfig := &Config{}
	if layered.Global != nil {
		finalConfig = layered.Global
	}
	if layered.Project != nil {
		finalConfig = mergeConfigs(finalConfig, layered.Project)
	}
	for _, override := range layered.Overrides {
		finalConfig = mergeConfigs(finalConfig, override.Config)
	}

	finalConfig, err = finishLoad(finalConfig)
	if err != nil {
		return nil, err
	}
	layered.Final = finalConfig

	return layered, nil
}
