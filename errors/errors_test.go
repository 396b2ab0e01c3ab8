package errors

import (
	"fmt"
	"testing"
)

func TestStockError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeDataNotFound, "no quote data")
	if err.Code != ErrCodeDataNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeDataNotFound, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeAPIConnection, "request failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeAPIConnection) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeDataNotFound) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("symbol", "AAPL").WithDetail("attempts", 3)
	if detailed.Details["symbol"] != "AAPL" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test DuplicateHook
	err := DuplicateHook("https://github.com/psf/black", "black")
	if err.Code != ErrCodeDuplicateHook {
		t.Errorf("expected code %s, got %s", ErrCodeDuplicateHook, err.Code)
	}
	if err.Details["hook"] != "black" {
		t.Error("DuplicateHook should include hook detail")
	}

	// Test InvalidRevision
	err = InvalidRevision("https://github.com/psf/black", "not a tag")
	if err.Code != ErrCodeInvalidRevision {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidRevision, err.Code)
	}
	if err.Details["rev"] != "not a tag" {
		t.Error("InvalidRevision should include rev detail")
	}

	// Test DataNotFound
	err = DataNotFound("daily data", "MSFT")
	if err.Code != ErrCodeDataNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeDataNotFound, err.Code)
	}
	if err.Details["symbol"] != "MSFT" {
		t.Error("DataNotFound should include symbol detail")
	}

	// Test CommandFailed
	err = CommandFailed("git rev-parse", fmt.Errorf("exit status 128"))
	if err.Code != ErrCodeCommandFailed {
		t.Errorf("expected code %s, got %s", ErrCodeCommandFailed, err.Code)
	}
	if err.Details["command"] != "git rev-parse" {
		t.Error("CommandFailed should include command detail")
	}
	if err.Unwrap() == nil {
		t.Error("CommandFailed should keep the cause")
	}
}
