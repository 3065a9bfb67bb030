package services

import (
	"errors"
	"fmt"
)

var (
	// ErrVerificationRequired gates trading behind mobile verification
	// and an approved KYC.
	ErrVerificationRequired = errors.New("mobile verification and approved KYC are required")

	ErrMissingProof = errors.New("proof of payment is required")

	ErrNotFound = errors.New("record not found")

	// ErrAlreadyApproved is returned on a second approval attempt so
	// loyalty points and notifications are never applied twice.
	ErrAlreadyApproved = errors.New("transaction already approved")

	// ErrRatesNotConfigured means the admin has not set exchange rates yet.
	ErrRatesNotConfigured = errors.New("exchange rates are not configured")
)

// ValidationError reports a malformed or out-of-range submission field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AccountNotConfiguredError means the user profile is missing the
// receiving details for the settlement leg of the requested trade.
type AccountNotConfiguredError struct {
	Setting string
}

func (e *AccountNotConfiguredError) Error() string {
	return fmt.Sprintf("account setting %q must be configured before trading", e.Setting)
}

// PersistenceError wraps a storage fault. Callers surface it as a generic
// failure; the detail stays in the logs.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
