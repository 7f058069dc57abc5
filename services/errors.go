package services

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so callers can branch on the class of
// error rather than matching message strings.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
	KindUpstream      Kind = "upstream"
	KindStorage       Kind = "storage"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches two domain errors by kind and message, so wrapped sentinels
// still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// IsKind reports whether err (or anything it wraps) is a domain error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

var (
	ErrEmptyCart           = NewError(KindValidation, "cart is empty")
	ErrPaymentNotCompleted = NewError(KindConflict, "payment has not completed")
	ErrAlreadyProcessed    = NewError(KindConflict, "payment already processed")
)

// ProductUnavailable names the order line that can no longer be purchased.
// The whole checkout fails; lines are never silently dropped.
func ProductUnavailable(name string) *Error {
	return NewError(KindConflict, fmt.Sprintf("product %q is not available for purchase", name))
}
