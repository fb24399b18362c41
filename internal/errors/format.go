package errors

import "strings"

// Format returns a multi-line human-readable rendering of the error for
// CLI output: header, detail, and the wrapped cause.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("ERROR ")
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Detail != "" {
		b.WriteString("\n  ")
		b.WriteString(e.Detail)
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		b.WriteString("\n  caused by: ")
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n")
	}
	return b.String()
}
