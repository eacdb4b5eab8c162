// Package apperr is the error taxonomy shared by stores, handlers and
// middleware. Handlers return *Error values and httputil.WriteError turns
// them into the JSON envelope.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Unauthorized
	Forbidden
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Status is the HTTP status for the kind. Conflict maps to 400, which is
// what the clients of this API branch on.
func (k Kind) Status() int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string       // rendered as "error"
	Hint    string       // rendered as "message", optional
	Details []FieldError // rendered as "details", optional
	Err     error        // never rendered outside development
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func NewValidation(msg string, details ...FieldError) *Error {
	return &Error{Kind: Validation, Message: msg, Details: details}
}

func NewNotFound(msg string) *Error { return New(NotFound, msg) }

func NewConflict(msg string) *Error { return New(Conflict, msg) }

// NewInternal wraps an unexpected failure. The message shown to clients is fixed.
func NewInternal(err error) *Error {
	return Wrap(Internal, "Erro interno do servidor", err)
}

// KindOf reports the kind of err; anything that is not an *Error is Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// From returns err as an *Error, wrapping it as Internal when needed.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return NewInternal(err)
}
