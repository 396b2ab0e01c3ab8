package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *StockError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// HookConfigNotFound creates a hook configuration not found error
func HookConfigNotFound(path string) *StockError {
	return New(ErrCodeHookConfigNotFound, fmt.Sprintf("hook configuration file not found: %s", path)).
		WithDetail("path", path)
}

// DuplicateHook creates a duplicate hook id error
func DuplicateHook(repo, hookID string) *StockError {
	return New(ErrCodeDuplicateHook,
		fmt.Sprintf("hook '%s' is declared more than once for repo '%s'", hookID, repo)).
		WithDetail("repo", repo).
		WithDetail("hook", hookID)
}

// InvalidRevision creates an invalid revision error
func InvalidRevision(repo, rev string) *StockError {
	return New(ErrCodeInvalidRevision,
		fmt.Sprintf("rev '%s' for repo '%s' is not a valid version tag", rev, repo)).
		WithDetail("repo", repo).
		WithDetail("rev", rev)
}

// MissingAPIKey creates a missing API key error
func MissingAPIKey() *StockError {
	return New(ErrCodeMissingAPIKey,
		"no Alpha Vantage API key configured (set api.key in stock.yml or the STOCK_API_KEY environment variable)")
}

// RateLimited creates a rate limit error from the API's note payload
func RateLimited(note string) *StockError {
	return New(ErrCodeAPIRateLimit, fmt.Sprintf("Alpha Vantage rate limit: %s", note)).
		WithDetail("note", note)
}

// APIRequest creates an API request failure error
func APIRequest(message string) *StockError {
	return New(ErrCodeAPIRequest, fmt.Sprintf("Alpha Vantage API error: %s", message))
}

// Connection creates a connection failure error
func Connection(err error) *StockError {
	return Wrap(err, ErrCodeAPIConnection, "failed to reach the Alpha Vantage API")
}

// DataNotFound creates a data not found error
func DataNotFound(what, symbol string) *StockError {
	return New(ErrCodeDataNotFound, fmt.Sprintf("no %s found for symbol '%s'", what, symbol)).
		WithDetail("symbol", symbol)
}

// NotARepository creates an error for a path that is not a git repository
func NotARepository(path string) *StockError {
	return New(ErrCodeGitNotRepo, fmt.Sprintf("%s is not a git repository", path)).
		WithDetail("path", path)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *StockError {
	stockErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		stockErr = stockErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return stockErr
}
