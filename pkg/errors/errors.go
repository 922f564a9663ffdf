// Package errors provides structured error types for prospect.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the panel, the CLI and the server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages for the panel's error view
//
// # Error Codes
//
// The three failure kinds a panel can see map onto dedicated codes:
//   - FETCH_FAILED: the graph description could not be fetched
//   - RENDER_FAILED: the layout engine rejected the graph description
//   - EXPORT_FAILED: an export could not be rendered or persisted
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid trial id: %s", id)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeExport, origErr, "save %s", filename)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidTrial   Code = "INVALID_TRIAL"
	ErrCodeInvalidViewBox Code = "INVALID_VIEWBOX"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Pipeline errors
	ErrCodeFetch  Code = "FETCH_FAILED"
	ErrCodeRender Code = "RENDER_FAILED"
	ErrCodeExport Code = "EXPORT_FAILED"

	// Network errors
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// *FetchError, *RenderError and *ExportError carry ErrCodeFetch, ErrCodeRender
// and ErrCodeExport respectively.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost coded error in err's chain, or
// the empty string if there is none.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case *FetchError:
			return ErrCodeFetch
		case *RenderError:
			return ErrCodeRender
		case *ExportError:
			return ErrCodeExport
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// The first *RenderError or *Error in err's chain decides the message: a
// *RenderError yields the engine's message verbatim, an *Error its message
// (and cause) without the code prefix. Other errors return their string as-is.
func UserMessage(err error) string {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch e := e.(type) {
		case *RenderError:
			return e.Message
		case *Error:
			if e.Cause != nil {
				return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
			}
			return e.Message
		}
	}
	return err.Error()
}

// FetchError describes a failed graph-description fetch.
// Status is zero when the request never produced a response.
type FetchError struct {
	URL    string
	Status int
	Body   string
	Cause  error
}

// Error implements the error interface. The message carries the status code and
// the response body when they are available.
func (e *FetchError) Error() string {
	var b strings.Builder
	b.WriteString("fetch ")
	b.WriteString(e.URL)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": status %d", e.Status)
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		b.WriteString(": ")
		b.WriteString(body)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// NotFound reports whether the fetch failed with HTTP 404.
func (e *FetchError) NotFound() bool {
	return e.Status == 404
}

// RenderError describes a graph description the layout engine rejected.
// Message is the engine's own message, unchanged.
type RenderError struct {
	Message string
	Cause   error
}

// Error returns the engine's message verbatim.
func (e *RenderError) Error() string {
	return e.Message
}

// Unwrap returns the underlying engine error, if any.
func (e *RenderError) Unwrap() error {
	return e.Cause
}

// ExportError describes an export that could not be rendered or saved.
// It never affects the state of the panel that issued it.
type ExportError struct {
	Filename string
	Cause    error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	if e.Cause == nil {
		return "export " + e.Filename
	}
	return fmt.Sprintf("export %s: %v", e.Filename, e.Cause)
}

// Unwrap returns the render or save failure.
func (e *ExportError) Unwrap() error {
	return e.Cause
}
