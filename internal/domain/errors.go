package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Generation specific errors
	ErrUnsupportedInput ErrorCode = "UNSUPPORTED_INPUT"
	ErrLLMServiceError  ErrorCode = "LLM_SERVICE_ERROR"
	ErrParse            ErrorCode = "PARSE_ERROR"
)

// PreviewLimit bounds how much of an offending payload is echoed back in errors.
const PreviewLimit = 500

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewUnsupportedInputError(message string) *DomainError {
	return NewError(ErrUnsupportedInput, message, nil)
}

// NewLLMServiceError marks a failed model invocation. The provider error is
// kept as the cause so callers can still match on it.
func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

func NewResultNotFoundError(id string) *DomainError {
	return NewError(ErrNotFound, fmt.Sprintf("Quiz result not found with ID: %s", id), nil)
}

// ParseError reports model output that could not be turned into questions.
// Reason is the low-level failure; Preview is a bounded head of the input.
type ParseError struct {
	Reason  string
	Preview string
}

func (e *ParseError) Error() string {
	if e.Preview == "" {
		return fmt.Sprintf("failed to parse quiz data: %s", e.Reason)
	}
	return fmt.Sprintf("failed to parse quiz data: %s (input: %q)", e.Reason, e.Preview)
}

// NewParseError builds a ParseError, truncating the preview to PreviewLimit runes.
func NewParseError(reason string, input string) *ParseError {
	return &ParseError{Reason: reason, Preview: Preview(input)}
}

// AsDomainError lifts a ParseError into the DomainError taxonomy used at the edges.
func (e *ParseError) AsDomainError() *DomainError {
	return NewError(ErrParse, "The model produced output that could not be parsed", e)
}

// Preview returns at most PreviewLimit runes of s.
func Preview(s string) string {
	r := []rune(s)
	if len(r) <= PreviewLimit {
		return s
	}
	return string(r[:PreviewLimit])
}
