package precommit

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/stocktools/core/errors"
)

// ConfigFileName is the canonical name of the hook configuration file.
const ConfigFileName = ".pre-commit-config.yaml"

// configFileNames lists the file names recognized when searching for a
// configuration, in order of preference.
var configFileNames = []string{
	".pre-commit-config.yaml",
	".pre-commit-config.yml",
}

// Load reads and parses a hook configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.HookConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeHookConfigInvalid, "failed to read hook configuration").
			WithDetail("path", path)
	}

	cfg, err := LoadFromBytes(data)
	if err != nil {
		if stockErr, ok := err.(*errors.StockError); ok {
			return nil, stockErr.WithDetail("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFromBytes parses a hook configuration from raw YAML. Decoding is
// strict: an option key the schema does not declare is an error, which is
// what catches misspelled or unrecognized hook options.
func LoadFromBytes(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeHookConfigInvalid, "hook configuration is empty")
		}
		return nil, errors.Wrap(err, errors.ErrCodeHookConfigInvalid, "failed to parse hook configuration")
	}

	return &cfg, nil
}

// FindConfigFile searches for a hook configuration file starting from
// startDir and walking up the directory tree.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.HookConfigNotFound(filepath.Join(startDir, ConfigFileName))
}
