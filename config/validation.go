package config

import (
	"fmt"
	"net/url"

	"github.com/stocktools/core/errors"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validateAPI(&c.API); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid api configuration")
	}
	return nil
}

func validateAPI(api *APIConfig) error {
	u, err := url.Parse(api.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("api.base_url '%s' is not a valid URL", api.BaseURL)).
			WithDetail("base_url", api.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("api.base_url scheme '%s' must be http or https", u.Scheme)).
			WithDetail("base_url", api.BaseURL)
	}

	if api.TimeoutSeconds < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "api.timeout_seconds must not be negative")
	}
	if api.MaxRetries < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "api.max_retries must not be negative")
	}

	return nil
}
