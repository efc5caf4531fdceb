package apperr

import (
	"errors"
	"fmt"
)

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("validation error")

// ErrConflict indicates an invariant or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates that the actor has no authority over the target entity.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Error carries a caller-facing message together with one of the sentinel kinds.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Msg
}

// Unwrap makes errors.Is match the sentinel kind.
func (e *Error) Unwrap() error { return e.Kind }

// Invalid returns an ErrInvalid with a message.
func Invalid(msg string) error { return &Error{Kind: ErrInvalid, Msg: msg} }

// Invalidf returns an ErrInvalid with a formatted message.
func Invalidf(format string, args ...any) error {
	return &Error{Kind: ErrInvalid, Msg: fmt.Sprintf(format, args...)}
}

// Conflict returns an ErrConflict with a message.
func Conflict(msg string) error { return &Error{Kind: ErrConflict, Msg: msg} }

// Forbidden returns an ErrForbidden with a message.
func Forbidden(msg string) error { return &Error{Kind: ErrForbidden, Msg: msg} }

// NotFound returns an ErrNotFound with a message.
func NotFound(msg string) error { return &Error{Kind: ErrNotFound, Msg: msg} }

// Message returns the caller-facing message of err, or fallback when err carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return fallback
}
