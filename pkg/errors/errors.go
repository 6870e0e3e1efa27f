package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the kind of fault that occurred at an external boundary
type ErrorType string

const (
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeStatus     ErrorType = "status"
	ErrorTypeParsing    ErrorType = "parsing"
	ErrorTypeFilesystem ErrorType = "filesystem"
)

// Error represents a search or download fault with optional HTTP status
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewStatusError reports a non-2xx response
func NewStatusError(code int, url string) *Error {
	return &Error{
		Type:    ErrorTypeStatus,
		Message: fmt.Sprintf("%s returned %s", url, http.StatusText(code)),
		Code:    code,
	}
}

// NewNetworkError wraps a transport fault
func NewNetworkError(err error) *Error {
	return &Error{Type: ErrorTypeNetwork, Message: err.Error(), Err: err}
}

// NewParsingError wraps a response decoding fault
func NewParsingError(code int, err error) *Error {
	return &Error{Type: ErrorTypeParsing, Message: err.Error(), Code: code, Err: err}
}

// NewFilesystemError wraps a local write fault
func NewFilesystemError(path string, err error) *Error {
	return &Error{Type: ErrorTypeFilesystem, Message: fmt.Sprintf("%s: %v", path, err), Err: err}
}

// IsSuccessStatus reports whether code is in the 2xx range
func IsSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}

// StatusCode extracts the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
