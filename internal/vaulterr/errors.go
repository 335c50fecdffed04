// Package vaulterr defines the closed set of error kinds produced by the
// vault core. Every failure that crosses a service boundary is one of these
// kinds; transports switch over the kind (via errors.As) to pick a status
// code instead of inspecting error strings.
package vaulterr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the API boundary.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindNotFound
	KindConstraint
	KindCrypto
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindUnauthorized:
		return "UnauthorizedError"
	case KindNotFound:
		return "NotFoundError"
	case KindConstraint:
		return "ConstraintError"
	case KindCrypto:
		return "CryptoError"
	case KindInternal:
		return "InternalError"
	}
	return "UnknownError"
}

// Error carries a kind, a caller-safe message, and the HTTP status the
// transport should answer with. Err optionally holds the underlying cause;
// it is never serialized to clients.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
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

// Validation reports missing or malformed caller input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Status: http.StatusBadRequest}
}

// Unauthorized reports a failed credential or token check.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

// NotFound reports a missing user or credential.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Status: http.StatusNotFound}
}

// Constraint reports a relational-constraint violation caused by caller
// input (foreign keys, not-null columns).
func Constraint(message string, err error) *Error {
	return &Error{Kind: KindConstraint, Message: message, Status: http.StatusBadRequest, Err: err}
}

// ConstraintDefect reports a constraint violation that indicates a system
// defect rather than bad input, e.g. a generated identifier colliding with
// an existing row.
func ConstraintDefect(message string, err error) *Error {
	return &Error{Kind: KindConstraint, Message: message, Status: http.StatusInternalServerError, Err: err}
}

// Crypto reports a cipher failure: malformed package, undecodable content,
// or a wrong key.
func Crypto(message string, err error) *Error {
	return &Error{Kind: KindCrypto, Message: message, Status: http.StatusInternalServerError, Err: err}
}

// Internal reports an unexpected primitive failure (hashing, randomness).
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Status: http.StatusInternalServerError, Err: err}
}

// IsKind reports whether err is (or wraps) a vault error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
