package errors

import "fmt"

// Category represents the type of error.
type Category string

const (
	CategoryUsage   Category = "usage"   // caller misused the element API
	CategoryRuntime Category = "runtime" // external renderer call failed
	CategoryConfig  Category = "config"  // invalid configuration
	CategoryInspect Category = "inspect" // inspect server failure
)

// Error is a structured error with a stable code and remediation detail.
type Error struct {
	// Code is the unique error identifier (e.g. "E001").
	Code string

	// Category is the error type (usage, runtime, ...).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation with remediation guidance.
	Detail string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Code != "" && e.Wrapped != nil:
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Wrapped)
	case e.Code != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Wrapped != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	default:
		return e.Message
	}
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// WithDetail replaces the detailed explanation.
func (e *Error) WithDetail(d string) *Error {
	e.Detail = d
	return e
}

// Wrap attaches an underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered error code.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "Unknown error"}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates an Error with a formatted message and no code.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error under a registered code. Returns nil
// for a nil error.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	return New(code).Wrap(err)
}
