package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes shared across the module. Packages returning an *Error should
// pick one of these so callers can branch on ErrorCode.
const (
	EInternal = "internal error"
	EInvalid  = "invalid"  // precondition or validation failed
	EConflict = "conflict" // action cannot be performed in the current state
)

// Error is the module's coded error.
//
// The Code targets automated handlers so that recovery can occur.
// Msg is a human-readable description of the problem.
// Op and Err chain errors together in a logical stack trace.
//
// To create a simple error,
//
//	&Error{
//	    Code: EInvalid,
//	    Msg:  "timer not started",
//	}
//
// To show where the error happens, wrap it and add Op.
//
//	&Error{
//	    Op:  "stopwatch.Lap",
//	    Err: ErrNotStarted,
//	}
type Error struct {
	Code string
	Msg  string
	Op   string
	Err  error
}

// Error implements the error interface by writing out the recursive messages.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		b.WriteString(e.Msg)
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		fmt.Fprintf(&b, "<%s>", e.Code)
	}
	return b.String()
}

// Unwrap returns the wrapped error so errors.Is and errors.As can walk the chain.
func (e *Error) Unwrap() error { return e.Err }

// ErrorCode returns the code of the root error, if available; otherwise returns EInternal.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return EInternal
	}

	if e == nil {
		return ""
	}

	if e.Code != "" {
		return e.Code
	}

	if e.Err != nil {
		return ErrorCode(e.Err)
	}

	return EInternal
}

// ErrorOp returns the op of the error, if available; otherwise return empty string.
func ErrorOp(err error) string {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return ""
	}

	if e.Op != "" {
		return e.Op
	}

	if e.Err != nil {
		return ErrorOp(e.Err)
	}

	return ""
}

// ErrorMessage returns the human-readable message of the error, if available.
// Otherwise returns a generic error message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return "An internal error has occurred."
	}

	if e == nil {
		return ""
	}

	if e.Msg != "" {
		return e.Msg
	}

	if e.Err != nil {
		return ErrorMessage(e.Err)
	}

	return "An internal error has occurred."
}
