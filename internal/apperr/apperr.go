// Package apperr defines the error value the service layer hands to HTTP
// handlers: an HTTP status, a client-facing message, an internal error code
// and the kind of failure that caused it.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies the underlying cause of an Error.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindPersistence Kind = "persistence"
)

// Internal error codes and their default messages.
const (
	CodeBadRequest    = "BAD_REQUEST"
	MessageBadRequest = "bad request"
)

// Error is returned by every failing service operation.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Kind    Kind   `json:"-"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest wraps err with the fixed "bad request" message.
func BadRequest(kind Kind, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Message: MessageBadRequest, Code: CodeBadRequest, Kind: kind, Err: err}
}

// BadRequestWithCause exposes the cause's text as the message.
func BadRequestWithCause(kind Kind, err error) *Error {
	msg := MessageBadRequest
	if err != nil {
		msg = err.Error()
	}
	return &Error{Status: http.StatusBadRequest, Message: msg, Code: CodeBadRequest, Kind: kind, Err: err}
}

// As reports whether err is (or wraps) an *Error and returns it.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
