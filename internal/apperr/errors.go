// Package apperr provides coded errors that carry an HTTP status.
// Handlers render any error through From so clients always see a code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error codes
const (
	CodeNoFile               = "NO_FILE"
	CodeInvalidFileType      = "INVALID_FILE_TYPE"
	CodeTooFewFiles          = "TOO_FEW_FILES"
	CodeTooFewPages          = "TOO_FEW_PAGES"
	CodeNoContent            = "NO_CONTENT"
	CodeUnsupportedOperation = "UNSUPPORTED_OPERATION"
	CodeInvalidParameter     = "INVALID_PARAMETER"
	CodeUnknownConversion    = "UNKNOWN_CONVERSION"
	CodeFileTooLarge         = "FILE_TOO_LARGE"
	CodeNotFound             = "NOT_FOUND"
	CodeStorageUnavailable   = "STORAGE_UNAVAILABLE"
	CodeConversionFailed     = "CONVERSION_FAILED"
	CodeLayoutFailed         = "LAYOUT_FAILED"
)

var statusByCode = map[string]int{
	CodeNoFile:               http.StatusBadRequest,
	CodeInvalidFileType:      http.StatusBadRequest,
	CodeTooFewFiles:          http.StatusBadRequest,
	CodeTooFewPages:          http.StatusBadRequest,
	CodeUnsupportedOperation: http.StatusBadRequest,
	CodeInvalidParameter:     http.StatusBadRequest,
	CodeNoContent:            http.StatusUnprocessableEntity,
	CodeUnknownConversion:    http.StatusNotFound,
	CodeNotFound:             http.StatusNotFound,
	CodeFileTooLarge:         http.StatusRequestEntityTooLarge,
	CodeStorageUnavailable:   http.StatusInternalServerError,
	CodeConversionFailed:     http.StatusInternalServerError,
	CodeLayoutFailed:         http.StatusInternalServerError,
}

// Error is a structured error with a stable code and an HTTP status.
type Error struct {
	// Code identifies the failure, e.g. "INVALID_FILE_TYPE"
	Code string

	// Message is shown to API clients
	Message string

	// Status is the HTTP status the error maps to
	Status int

	// Context holds extra key-value details for logs
	Context map[string]string

	// Cause is the wrapped library or I/O error, if any
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext adds a key-value detail and returns the error for chaining.
func (e *Error) WithContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// WithCause sets the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// ContextString formats the context entries in key order.
func (e *Error) ContextString() string {
	if len(e.Context) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, e.Context[k]))
	}
	return strings.Join(parts, ", ")
}

// New creates an error with the status registered for code. Unknown codes
// map to 500.
func New(code, message string) *Error {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &Error{Code: code, Message: message, Status: status}
}

// Newf creates an error with a formatted message.
func Newf(code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an error that wraps cause.
func Wrap(cause error, code, message string) *Error {
	return New(code, message).WithCause(cause)
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err's chain contains an *Error with the given code.
func IsCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// From converts any error into an *Error. Errors that are not already coded
// become CONVERSION_FAILED with the original error as cause.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok {
		return e
	}
	return Wrap(err, CodeConversionFailed, "conversion failed")
}

// StatusOf returns the HTTP status for err.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return From(err).Status
}
