// Package errs provides the unified error type used across db-shuttle.
//
// Connectors and the pipeline wrap native driver errors into *errs.Error
// before returning them. Callers use the Is* predicates to decide whether a
// failure is fatal to the whole run (configuration, connection) or to a
// single table (schema, data) without importing driver packages.
package errs

import (
	"errors"
	"fmt"
)

// Kind categorises a failure without exposing driver-specific codes.
type Kind int

const (
	KindUnknown       Kind = iota
	KindConfiguration      // invalid endpoint, table spec or config file; fatal before any I/O
	KindConnection         // cannot reach an endpoint; fatal to the whole run
	KindSchema             // describe/create failure; fatal to one table
	KindData               // insert failure mid-stream; fatal to one table
	KindQuery              // raw query failure via the escape hatch
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	case KindSchema:
		return "schema"
	case KindData:
		return "data"
	case KindQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by connectors and the pipeline.
// Table and Phase are filled in where known so errors are actionable.
type Error struct {
	Kind    Kind
	Table   string
	Phase   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s]", e.Kind)
	if e.Table != "" {
		msg += " table " + e.Table
	}
	if e.Phase != "" {
		msg += " (" + e.Phase + ")"
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap lets errors.Is / errors.As traverse the cause chain.
func (e *Error) Unwrap() error { return e.Cause }

// New creates an *Error with no cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message and no cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error around an underlying cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// WithTable annotates the error with the table and phase it occurred in.
func (e *Error) WithTable(table, phase string) *Error {
	e.Table = table
	e.Phase = phase
	return e
}

func IsConfiguration(err error) bool { return kindOf(err) == KindConfiguration }
func IsConnection(err error) bool    { return kindOf(err) == KindConnection }
func IsSchema(err error) bool        { return kindOf(err) == KindSchema }
func IsData(err error) bool          { return kindOf(err) == KindData }
func IsQuery(err error) bool         { return kindOf(err) == KindQuery }

// Fatal reports whether the error aborts the whole run rather than one table.
func Fatal(err error) bool {
	k := kindOf(err)
	return k == KindConfiguration || k == KindConnection
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
