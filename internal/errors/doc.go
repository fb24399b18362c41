// Package errors provides structured, coded errors for the Reify engine.
//
// Every error condition the engine can report carries a stable code
// (E001, E002, ...) registered in this package together with its category,
// message, and remediation detail. Codes appear in structured log output
// and in the inspect event stream, so drivers can alert on them without
// string matching.
package errors
