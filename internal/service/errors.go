package service

import (
	"errors"
	"fmt"

	"github.com/Mithilesh71320/nextera-code/internal/repository"
)

// ErrorKind classifies failures surfaced to the admin and hospital surfaces.
type ErrorKind string

const (
	KindInvalidInput     ErrorKind = "INVALID_INPUT"
	KindNoSelection      ErrorKind = "NO_SELECTION"
	KindCapacityExceeded ErrorKind = "CAPACITY_EXCEEDED"
	KindStoreFailure     ErrorKind = "STORE_FAILURE"
	KindSessionMissing   ErrorKind = "SESSION_MISSING"
)

// AssignmentError is the error type returned by every service operation.
type AssignmentError struct {
	Kind      ErrorKind `json:"code"`
	Field     string    `json:"field,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Remaining int       `json:"remaining"`
	Message   string    `json:"message"`
	Err       error     `json:"-"`
}

func (e *AssignmentError) Error() string {
	return e.Message
}

func (e *AssignmentError) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can use errors.Is(err, ErrCapacityExceeded).
func (e *AssignmentError) Is(target error) bool {
	t, ok := target.(*AssignmentError)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrInvalidInput     = &AssignmentError{Kind: KindInvalidInput}
	ErrNoSelection      = &AssignmentError{Kind: KindNoSelection}
	ErrCapacityExceeded = &AssignmentError{Kind: KindCapacityExceeded}
	ErrStoreFailure     = &AssignmentError{Kind: KindStoreFailure}
	ErrSessionMissing   = &AssignmentError{Kind: KindSessionMissing}
)

func InvalidInput(field, reason string) *AssignmentError {
	return &AssignmentError{
		Kind:    KindInvalidInput,
		Field:   field,
		Reason:  reason,
		Message: fmt.Sprintf("%s %s", field, reason),
	}
}

func NoSelection() *AssignmentError {
	return &AssignmentError{
		Kind:    KindNoSelection,
		Message: "select at least one nurse to assign",
	}
}

func CapacityExceeded(remaining int) *AssignmentError {
	return &AssignmentError{
		Kind:      KindCapacityExceeded,
		Remaining: remaining,
		Message:   fmt.Sprintf("you can assign only %d nurse(s) for this request", remaining),
	}
}

// StoreFailure wraps a record store error, keeping its message verbatim.
func StoreFailure(err error) *AssignmentError {
	return &AssignmentError{
		Kind:    KindStoreFailure,
		Message: err.Error(),
		Err:     err,
	}
}

func SessionMissing() *AssignmentError {
	return &AssignmentError{
		Kind:    KindSessionMissing,
		Message: "a signed-in admin session is required",
	}
}

// IsNotFound reports whether err came from a lookup of a record that does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}

func storeFailuref(format string, err error) *AssignmentError {
	wrapped := fmt.Errorf(format, err)
	return StoreFailure(wrapped)
}
