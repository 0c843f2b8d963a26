// Package errors provides a lightweight structured error type (BolgenError)
// for category-based classification in the HTTP adapter and CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a bolgen error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Document generation errors
	CategoryRender     ErrorCategory = "render"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// FieldError identifies a structurally invalid field in an input document.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (f FieldError) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Reason)
}

// BolgenError is a structured error with category, severity, and context
type BolgenError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Fields   []FieldError  `json:"fields,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for BolgenError
type ContextFields map[string]any

// Error implements the error interface
func (e *BolgenError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s (%s): %s: %d invalid field(s)", e.Category, e.Severity, e.Message, len(e.Fields))
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *BolgenError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *BolgenError) WithContext(key string, value any) *BolgenError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// WithFields attaches field-level validation details to the error
func (e *BolgenError) WithFields(fields []FieldError) *BolgenError {
	e.Fields = fields
	return e
}

// New creates a new BolgenError
func New(category ErrorCategory, severity ErrorSeverity, message string) *BolgenError {
	return &BolgenError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new BolgenError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *BolgenError {
	return &BolgenError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if be, ok := err.(*BolgenError); ok {
		return be.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a BolgenError
func GetCategory(err error) ErrorCategory {
	if be, ok := err.(*BolgenError); ok {
		return be.Category
	}
	return CategoryInternal
}

// AsBolgen attempts to convert an error to a BolgenError
func AsBolgen(err error) (*BolgenError, bool) {
	be, ok := err.(*BolgenError)
	return be, ok
}
