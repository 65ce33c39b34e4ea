package errs

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies an error so callers can decide how to surface it
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindRemoteRead  Kind = "remote_read"
	KindRemoteWrite Kind = "remote_write"
	KindForbidden   Kind = "forbidden"
	KindConflict    Kind = "conflict"
)

// Error is a classified error carrying the operation that produced it
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports input rejected before any remote call
func Validation(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

// NotFound reports an expected row that does not exist
func NotFound(op, msg string) error {
	return &Error{Kind: KindNotFound, Op: op, Msg: msg}
}

// Forbidden reports a caller that may not perform the operation
func Forbidden(op, msg string) error {
	return &Error{Kind: KindForbidden, Op: op, Msg: msg}
}

// Conflict reports a write rejected because the row already exists
func Conflict(op, msg string) error {
	return &Error{Kind: KindConflict, Op: op, Msg: msg}
}

// RemoteRead wraps a failed or timed out query
func RemoteRead(op string, err error) error {
	return &Error{Kind: KindRemoteRead, Op: op, Msg: timeoutMsg(err), Err: err}
}

// RemoteWrite wraps a failed insert, update, delete or commit
func RemoteWrite(op string, err error) error {
	return &Error{Kind: KindRemoteWrite, Op: op, Msg: timeoutMsg(err), Err: err}
}

func timeoutMsg(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	return ""
}

// KindOf returns the kind of the first classified error in the chain, or "" if none
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsForbidden(err error) bool  { return KindOf(err) == KindForbidden }
func IsConflict(err error) bool   { return KindOf(err) == KindConflict }

// UserMessage converts an error into the text shown to a member
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return "Unexpected error occurred."
	}

	switch e.Kind {
	case KindValidation, KindConflict, KindForbidden:
		return capitalise(e.Msg) + "."
	case KindNotFound:
		return "Nothing found."
	case KindRemoteRead:
		return "Data unavailable, please try again."
	case KindRemoteWrite:
		return "Failed to save, please try again."
	}
	return "Unexpected error occurred."
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
