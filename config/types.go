package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// DefaultBaseURL is the Alpha Vantage query endpoint used when the
// configuration does not override it.
const DefaultBaseURL = "https://www.alphavantage.co/query"

// Config is the parsed stock.yml project configuration.
type Config struct {
	Name    string `yaml:"name,omitempty" toml:"name,omitempty" jsonschema:"description=Name of the project"`
	Version string `yaml:"version" toml:"version" jsonschema:"description=Configuration version (e.g. 1.0)"`

	API APIConfig `yaml:"api,omitempty" toml:"api,omitempty" jsonschema:"description=Alpha Vantage API settings"`

	// Extensions captures all other top-level keys for extensibility.
	// Sections like 'logging' are decoded on demand with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`
}

// APIConfig holds the Alpha Vantage client settings.
type APIConfig struct {
	Key            string `yaml:"key,omitempty" toml:"key,omitempty" jsonschema:"description=Alpha Vantage API key (or set STOCK_API_KEY)"`
	BaseURL        string `yaml:"base_url,omitempty" toml:"base_url,omitempty" jsonschema:"description=Query endpoint override"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" toml:"timeout_seconds,omitempty" jsonschema:"description=Per-request timeout in seconds (default 30)"`
	MaxRetries     int    `yaml:"max_retries,omitempty" toml:"max_retries,omitempty" jsonschema:"description=Retry attempts for timed-out requests (default 3)"`
}

// SetDefaults fills in the defaults for unset fields.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 30
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = 3
	}
}

// UnmarshalExtension decodes a named extension section into target.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
