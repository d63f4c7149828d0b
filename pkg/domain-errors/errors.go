package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error so transport layers can translate it without
// string matching. Validation failures carry the specific reason (a rejected
// geofence must tell the client which field was wrong, not "bad request").
type Code string

const (
	CodeBadRequest        Code = "bad_request"
	CodeInvalidCoordinate Code = "invalid_coordinate"
	CodeInvalidRadius     Code = "invalid_radius"
	CodeInvalidLocation   Code = "invalid_location"
	CodeNotFound          Code = "not_found"
	CodeInternal          Code = "internal"
)

// Error is a coded domain error. Services return these; handlers map the code
// to an HTTP status and JSON envelope.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded domain error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded domain error that preserves the underlying cause for
// errors.Is/errors.As chains.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidCoordinate, CodeInvalidRadius, CodeInvalidLocation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
