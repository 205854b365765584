// Package apperr defines the error kinds surfaced by the domain services.
package apperr

import "errors"

// Kind classifies a failure for the transport layer.
type Kind int

const (
	Internal Kind = iota
	Conflict
	NotFound
	Forbidden
	Validation
	ExternalService
)

func (k Kind) String() string {
	switch k {
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case Validation:
		return "validation"
	case ExternalService:
		return "external_service"
	}

	return "internal"
}

// Error is a domain failure with a user-facing message.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}

	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports a match when target is an *Error with the same kind and either no
// message or the same message. This lets errors.Is(err, contract.ErrNotFound)
// and errors.Is(err, apperr.New(apperr.NotFound, "")) both work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	if t.Kind != e.Kind {
		return false
	}

	return t.Msg == "" || t.Msg == e.Msg
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Internal
}

// Message returns the user-facing message of err, hiding internal details.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Msg
	}

	return "internal error"
}
