package services

import (
	"errors"
	"fmt"
	"strings"
)

// Expected, recoverable-by-the-caller outcomes. Routes map these onto
// HTTP statuses; anything else is a plain 500.
var (
	ErrForbidden           = errors.New("actor is not allowed to perform this action")
	ErrNotCancellable      = errors.New("booking can no longer be cancelled")
	ErrInvalidState        = errors.New("operation is not valid in the current state")
	ErrPaymentFailed       = errors.New("payment was not confirmed by the processor")
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError covers both flavors of conflict: capacity exhausted for
// one or more dates, and a duplicate unique field (offline guest email
// or username). Exactly one of the two detail fields is set so the
// client can show the right inline error.
type ConflictError struct {
	Field          string   // "email" | "username" for duplicate-field conflicts
	ExhaustedDates []string // YYYY-MM-DD dates with no capacity left
}

func (e *ConflictError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s already exists", e.Field)
	}
	if len(e.ExhaustedDates) > 0 {
		return fmt.Sprintf("no capacity left on %s", strings.Join(e.ExhaustedDates, ", "))
	}
	return "conflict"
}

// BookingWriteFailedError is the one fatal, unrecovered case: the deposit
// charge succeeded but the booking write failed. It carries the charge
// reference so the money can be reconciled manually; the platform does
// not auto-refund on this path.
type BookingWriteFailedError struct {
	ChargeID string
	Err      error
}

func (e *BookingWriteFailedError) Error() string {
	return fmt.Sprintf("booking write failed after charge %s: %v", e.ChargeID, e.Err)
}

func (e *BookingWriteFailedError) Unwrap() error { return e.Err }
