package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnavailable        = errors.New("service not configured")
)

// ValidationError carries a message safe to show to the client.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ServiceError wraps a failure of a collaborator (the store or the match
// oracle) that aborted the whole operation.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *ServiceError) Unwrap() error { return e.Err }
