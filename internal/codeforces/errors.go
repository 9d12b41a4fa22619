package codeforces

import (
	"errors"
	"fmt"
)

var ErrEmptyHandle = errors.New("codeforces handle is empty")

// APIError is a response whose envelope status is not "OK".
type APIError struct {
	Method     string
	HTTPStatus int
	Status     string
	Comment    string
}

func (e *APIError) Error() string {
	if e.Comment != "" {
		return fmt.Sprintf("codeforces %s: %s", e.Method, e.Comment)
	}
	return fmt.Sprintf("codeforces %s: status %q (http %d)", e.Method, e.Status, e.HTTPStatus)
}

// DecodeError is a response body that does not match the expected shape.
type DecodeError struct {
	Method string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("codeforces %s: malformed response: %v", e.Method, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
