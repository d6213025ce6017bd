package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain failure with an HTTP status. Code identifies the taxon so
// errors.Is matches derived errors against their sentinel. Details carries
// per-field validation messages when present.
type Error struct {
	Code    string   `json:"-"`
	Status  int      `json:"statusCode"`
	Message string   `json:"message"`
	Details []string `json:"errors,omitempty"`
}

func (e *Error) Error() string { return e.Message }

// Is reports whether target is an *Error of the same taxon.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// Sentinel errors for the domain failure taxonomy. Services return these
// (possibly via New with a specific message); the HTTP layer maps them to the
// uniform error envelope.
var (
	ErrValidation       = &Error{Code: "VALIDATION", Status: http.StatusBadRequest, Message: "validation failed"}
	ErrDuplicate        = &Error{Code: "DUPLICATE", Status: http.StatusBadRequest, Message: "already exists"}
	ErrNotFound         = &Error{Code: "NOT_FOUND", Status: http.StatusNotFound, Message: "not found"}
	ErrUnauthorized     = &Error{Code: "UNAUTHORIZED", Status: http.StatusUnauthorized, Message: "unauthorized"}
	ErrInvalidToken     = &Error{Code: "INVALID_TOKEN", Status: http.StatusUnauthorized, Message: "invalid token"}
	ErrExpiredToken     = &Error{Code: "EXPIRED_TOKEN", Status: http.StatusUnauthorized, Message: "token expired"}
	ErrForbidden        = &Error{Code: "FORBIDDEN", Status: http.StatusForbidden, Message: "forbidden"}
	ErrEmailNotVerified = &Error{Code: "EMAIL_NOT_VERIFIED", Status: http.StatusUnauthorized, Message: "email not verified"}
	ErrInvalidAddress   = &Error{Code: "INVALID_ADDRESS", Status: http.StatusBadRequest, Message: "invalid address"}
	ErrUnavailableItems = &Error{Code: "UNAVAILABLE_ITEMS", Status: http.StatusBadRequest, Message: "some items are unavailable"}
	ErrTransaction      = &Error{Code: "TRANSACTION", Status: http.StatusInternalServerError, Message: "transaction failed"}
	ErrDependency       = &Error{Code: "DEPENDENCY", Status: http.StatusInternalServerError, Message: "dependency failure"}
)

// New returns a copy of base carrying a specific message.
func New(base *Error, message string, details ...string) *Error {
	return &Error{Code: base.Code, Status: base.Status, Message: message, Details: details}
}

// Newf is New with fmt-style formatting.
func Newf(base *Error, format string, args ...any) *Error {
	return New(base, fmt.Sprintf(format, args...))
}

// From extracts the *Error from an error chain, or nil.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}
