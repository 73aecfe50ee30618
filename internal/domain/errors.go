package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized indicates unauthorized access
	ErrUnauthorized = errors.New("unauthorized")
)

// UnsupportedFormatError indicates an upload with an extension outside the
// accepted set. Raised before any extraction or network I/O.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Extension)
}

// MissingCredentialsError indicates an operation that needs an API key was
// invoked without one configured.
type MissingCredentialsError struct{}

func (e *MissingCredentialsError) Error() string {
	return "API key chưa được cấu hình. Vui lòng vào Cài đặt để nhập API key."
}

// ExtractionEmptyError indicates a format-specific extractor produced no
// usable text. Hint names a remediation for the user.
type ExtractionEmptyError struct {
	Format string
	Hint   string
}

func (e *ExtractionEmptyError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("no text could be extracted from %s file: %s", e.Format, e.Hint)
	}
	return fmt.Sprintf("no text could be extracted from %s file", e.Format)
}

// ProviderError indicates a non-success response from an LLM provider.
// Message carries the provider's own error text when it was parseable.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s request failed with status %d", e.Provider, e.StatusCode)
}
