package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Hook configuration errors
	ErrCodeHookConfigNotFound ErrorCode = "HOOK_CONFIG_NOT_FOUND"
	ErrCodeHookConfigInvalid  ErrorCode = "HOOK_CONFIG_INVALID"
	ErrCodeHookValidation     ErrorCode = "HOOK_VALIDATION"
	ErrCodeDuplicateHook      ErrorCode = "DUPLICATE_HOOK"
	ErrCodeInvalidRevision    ErrorCode = "INVALID_REVISION"

	// Market data API errors
	ErrCodeAPIRequest    ErrorCode = "API_REQUEST"
	ErrCodeAPIRateLimit  ErrorCode = "API_RATE_LIMIT"
	ErrCodeAPIConnection ErrorCode = "API_CONNECTION"
	ErrCodeDataNotFound  ErrorCode = "DATA_NOT_FOUND"
	ErrCodeMissingAPIKey ErrorCode = "MISSING_API_KEY"

	// Command execution errors
	ErrCodeCommandFailed ErrorCode = "COMMAND_FAILED"

	// Git errors
	ErrCodeGitNotRepo  ErrorCode = "GIT_NOT_REPO"
	ErrCodeHookInstall ErrorCode = "HOOK_INSTALL"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// StockError represents a structured error with context
type StockError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *StockError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *StockError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *StockError) WithDetail(key string, value interface{}) *StockError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *StockError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new StockError
func New(code ErrorCode, message string) *StockError {
	return &StockError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a StockError
func Wrap(err error, code ErrorCode, message string) *StockError {
	return &StockError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific StockError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	stockErr, ok := err.(*StockError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return stockErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	stockErr, ok := err.(*StockError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return stockErr.Code
}
