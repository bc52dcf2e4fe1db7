package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTransition indicates a status transition was requested from a
// state that does not permit it. Surfaced to the caller, never retried.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrOtpMismatch indicates the submitted delivery OTP did not match the
// stored code. The caller may re-prompt; no state change has occurred.
var ErrOtpMismatch = errors.New("otp does not match")

// ErrNoOtpIssued indicates OTP confirmation was attempted for an assignment
// that has no outstanding OTP.
var ErrNoOtpIssued = errors.New("no otp issued for assignment")

// ErrAlreadySettled indicates the assignment was already settled by a prior
// (possibly concurrent) completion. Callers treat this as a no-op.
var ErrAlreadySettled = errors.New("assignment already settled")

// ErrInsufficientBalance indicates a debit would take an account balance
// below zero.
var ErrInsufficientBalance = errors.New("insufficient account balance")

// AppError wraps a lower-level failure with an HTTP-ish status code so
// handlers can map repository errors without inspecting driver internals.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that also matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
