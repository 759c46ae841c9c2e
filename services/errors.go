package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ledger failure for the callable boundary.
type ErrorKind string

const (
	KindUnauthenticated    ErrorKind = "unauthenticated"
	KindInvalidArgument    ErrorKind = "invalid_argument"
	KindPermissionDenied   ErrorKind = "permission_denied"
	KindNotFound           ErrorKind = "not_found"
	KindFailedPrecondition ErrorKind = "failed_precondition"
	KindInternal           ErrorKind = "internal"
)

// Error carries a kind plus a human-readable message. The message is safe
// to show to callers; no internal paths or stack detail.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Message
}

// Errf builds a kinded error.
func Errf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf classifies any error. Errors that do not carry a recognized kind
// (store failures, exhausted transaction retries) surface as internal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-visible message for err. Unclassified
// errors get a generic message so internal detail never leaks.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
