package cli

import (
	"fmt"
	"os"

	"github.com/stocktools/core/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	// Check for specific error codes
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No stock.yml found. Create one with at least an 'api' section.\n")
		return err

	case errors.ErrCodeHookConfigNotFound:
		if stockErr, ok := err.(*errors.StockError); ok {
			fmt.Fprintf(os.Stderr, "❌ No %s found\n", stockErr.Details["path"])
		} else {
			fmt.Fprintf(os.Stderr, "❌ No hook configuration found\n")
		}
		return err

	case errors.ErrCodeHookValidation, errors.ErrCodeDuplicateHook, errors.ErrCodeInvalidRevision:
		fmt.Fprintf(os.Stderr, "❌ Hook configuration is invalid: %v\n", err)
		return err

	case errors.ErrCodeMissingAPIKey:
		fmt.Fprintf(os.Stderr, "❌ No API key configured.\n")
		fmt.Fprintf(os.Stderr, "Set api.key in stock.yml or export STOCK_API_KEY.\n")
		return err

	case errors.ErrCodeAPIRateLimit:
		fmt.Fprintf(os.Stderr, "❌ Alpha Vantage rate limit reached. Try again later.\n")
		return err

	case errors.ErrCodeDataNotFound:
		if stockErr, ok := err.(*errors.StockError); ok {
			fmt.Fprintf(os.Stderr, "❌ %s\n", stockErr.Message)
		}
		return err

	case errors.ErrCodeGitNotRepo:
		fmt.Fprintf(os.Stderr, "❌ Not a git repository. Run this from inside a repository.\n")
		return err

	default:
		// Generic error handling
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if stockErr, ok := err.(*errors.StockError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", stockErr.ToJSON())
			}
		}
		return err
	}
}
