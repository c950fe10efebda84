package auth

import (
	"errors"
	"fmt"
)

// Kind classifies a failed login for display purposes.
type Kind int

const (
	// KindGeneric covers every failure that is not explicitly recognized:
	// transport errors, timeouts, malformed payloads, other server rejections.
	KindGeneric Kind = iota
	KindUserNotFound
)

func (k Kind) String() string {
	switch k {
	case KindUserNotFound:
		return "user_not_found"
	default:
		return "generic"
	}
}

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrMalformedResponse = errors.New("malformed login response")
)

// Error is the failure returned by Client implementations.
type Error struct {
	Kind   Kind
	Op     string
	Status int // HTTP status, 0 when the request never got a response
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the failure kind carried by err. Errors that are not
// produced by this package are generic.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	if errors.Is(err, ErrUserNotFound) {
		return KindUserNotFound
	}
	return KindGeneric
}

// NotFound builds a user-not-found failure.
func NotFound(op string, status int) *Error {
	return &Error{Kind: KindUserNotFound, Op: op, Status: status, Err: ErrUserNotFound}
}

// Generic builds a catch-all failure.
func Generic(op string, status int, err error) *Error {
	return &Error{Kind: KindGeneric, Op: op, Status: status, Err: err}
}
