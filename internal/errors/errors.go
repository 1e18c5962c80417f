package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrMissingInput    = errors.New("missing required input")
	ErrInvalidURL      = errors.New("URL must start with http:// or https://")
	ErrInvalidStyle    = errors.New("invalid naming style")
	ErrEmptyBody       = errors.New("response body is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrSinkUnavailable = errors.New("GITHUB_ENV is not set. This action must run in GitHub Actions environment")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeFetch   ErrorType = "fetch"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeSink    ErrorType = "sink"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// HTTPStatusError is returned when the server answers with a non-2xx status.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	// Snippet holds at most SnippetLimit characters of the response body.
	Snippet string
}

// SnippetLimit is the maximum number of characters of a failed response body
// kept in HTTPStatusError.
const SnippetLimit = 200

// NewHTTPStatusError builds an HTTPStatusError, truncating body to SnippetLimit characters.
func NewHTTPStatusError(statusCode int, status string, body string) *HTTPStatusError {
	runes := []rune(body)
	if len(runes) > SnippetLimit {
		runes = runes[:SnippetLimit]
	}
	return &HTTPStatusError{
		StatusCode: statusCode,
		Status:     status,
		Snippet:    string(runes),
	}
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("failed to fetch JSON (%s): %s", e.Status, e.Snippet)
}

// NewConfigError creates a new error related to input resolution and validation
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// NewFetchError creates a new error for a non-success HTTP response
func NewFetchError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFetch,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error related to JSON parsing
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewSinkError creates a new error related to writing the env file
func NewSinkError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSink,
		Message: message,
		Err:     err,
	}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		case ErrorTypeFetch:
			return fmt.Sprintf("Fetch error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.Message)
		case ErrorTypeSink:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	if errors.Is(err, ErrInvalidJSON) {
		return "Error: Invalid JSON format"
	}
	if errors.Is(err, ErrSinkUnavailable) {
		return fmt.Sprintf("Error: %s", ErrSinkUnavailable)
	}

	return fmt.Sprintf("Error: %v", err)
}
