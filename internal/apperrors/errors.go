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

// ErrConflict indicates the resource is not in a state that allows the requested change.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates the caller is authenticated but not allowed to act.
var ErrForbidden = errors.New("forbidden")

// Invoice workflow errors.
var (
	// ErrIllegalTransition is returned when a command is not valid for the invoice's
	// current status and the acting role.
	ErrIllegalTransition = errors.New("illegal invoice transition")

	// ErrAmountExceedsBalance is returned when a payment would overpay the invoice.
	ErrAmountExceedsBalance = errors.New("amount exceeds balance due")

	// ErrMissingRejectionReason is returned when a reject command carries no reason.
	ErrMissingRejectionReason = errors.New("rejection reason is required")

	// ErrBusy is returned when the per-invoice lock could not be acquired in time.
	ErrBusy = errors.New("invoice is busy, retry later")

	// ErrPersistence is returned when the store failed to commit a unit of work.
	ErrPersistence = errors.New("persistence failure")

	// ErrInvariantViolation means a ledger invariant would be broken by the change.
	ErrInvariantViolation = errors.New("ledger invariant violation")
)

// IllegalTransitionError carries the state and command that were rejected.
type IllegalTransitionError struct {
	From    string
	Role    string
	Command string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: command %q not allowed for role %q in status %q", ErrIllegalTransition.Error(), e.Command, e.Role, e.From)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// NewIllegalTransition builds an IllegalTransitionError.
func NewIllegalTransition(from, role, command string) error {
	return &IllegalTransitionError{From: from, Role: role, Command: command}
}

// AppError is an error carrying an HTTP-ish status code and a safe message.
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

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// IsValidation reports whether err is a caller-correctable validation failure.
// These should be shown to the user rather than retried.
func IsValidation(err error) bool {
	return errors.Is(err, ErrIllegalTransition) ||
		errors.Is(err, ErrAmountExceedsBalance) ||
		errors.Is(err, ErrMissingRejectionReason) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicate)
}

// IsRetryable reports whether err is transient and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBusy) || errors.Is(err, ErrPersistence)
}
