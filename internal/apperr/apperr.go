package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the flat categories the client
// surfaces. Validation errors are raised before any network I/O; all other
// kinds are assigned once, at the backend boundary, and never re-interpreted
// above it.
type Kind string

const (
	KindValidation     Kind = "ValidationError"
	KindAuthentication Kind = "AuthenticationError"
	KindNetwork        Kind = "NetworkError"
	KindServer         Kind = "ServerError"
	KindUnknown        Kind = "UnknownError"
)

// Error is the tagged error value passed across layer boundaries.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a ValidationError. These must be returned before any
// network call is made.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Authentication builds an AuthenticationError (no active session, rejected
// credentials, expired token).
func Authentication(format string, args ...any) *Error {
	return &Error{Kind: KindAuthentication, Message: fmt.Sprintf(format, args...)}
}

// Network builds a NetworkError wrapping the transport failure.
func Network(err error, format string, args ...any) *Error {
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf(format, args...), Err: err}
}

// Server builds a ServerError from a non-2xx backend response.
func Server(format string, args ...any) *Error {
	return &Error{Kind: KindServer, Message: fmt.Sprintf(format, args...)}
}

// Unknown wraps an error that escaped classification.
func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Message: "unexpected error", Err: err}
}

// KindOf reports the Kind carried by err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool     { return KindOf(err) == KindValidation }
func IsAuthentication(err error) bool { return KindOf(err) == KindAuthentication }
func IsNetwork(err error) bool        { return KindOf(err) == KindNetwork }
func IsServer(err error) bool         { return KindOf(err) == KindServer }
