package entities

import "errors"

// Errors shared by every storage driver.
var (
	ErrStateNotFound  = errors.New("progress state not found")
	ErrMalformedState = errors.New("malformed progress state")
	ErrUserNotFound   = errors.New("user not found")
	ErrTaskNotFound   = errors.New("admin task not found")
)
