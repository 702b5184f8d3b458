package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(code, msg string) *Error {
	return New(http.StatusBadRequest, code, errors.New(msg))
}

func Unauthorized(code, msg string) *Error {
	return New(http.StatusUnauthorized, code, errors.New(msg))
}

func Forbidden(code, msg string) *Error {
	return New(http.StatusForbidden, code, errors.New(msg))
}

func NotFound(code, msg string) *Error {
	return New(http.StatusNotFound, code, errors.New(msg))
}

func Conflict(code, msg string) *Error {
	return New(http.StatusConflict, code, errors.New(msg))
}

func TooManyRequests(code, msg string) *Error {
	return New(http.StatusTooManyRequests, code, errors.New(msg))
}

// Dependency wraps a failure of the database, mailer, storage or gateway.
// The cause stays reachable through Unwrap but msg is what callers see.
func Dependency(code, msg string, cause error) *Error {
	return New(http.StatusInternalServerError, code, &dependencyError{msg: msg, cause: cause})
}

type dependencyError struct {
	msg   string
	cause error
}

func (d *dependencyError) Error() string { return d.msg }
func (d *dependencyError) Unwrap() error { return d.cause }

// Cause returns the wrapped dependency failure, if any.
func Cause(err error) error {
	var d *dependencyError
	if errors.As(err, &d) {
		return d.cause
	}
	return nil
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae, true
	}
	return nil, false
}

// StatusOf reports the HTTP status carried by err, 500 when it carries none.
func StatusOf(err error) int {
	if ae, ok := As(err); ok && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

func IsStatus(err error, status int) bool {
	ae, ok := As(err)
	return ok && ae.Status == status
}
