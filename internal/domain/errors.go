package domain

import (
	"errors"
	"fmt"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
)

// ValidationError marks a malformed link-creation request. Nothing is
// persisted when one is returned.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field %q is missing or invalid", e.Field)
}

// ProcessorError carries the raw detail of a rejected or timed-out
// payment-link request so it can be surfaced for debugging.
type ProcessorError struct {
	StatusCode int
	RawBody    string
	Err        error
}

func (e *ProcessorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payment processor request failed: %v", e.Err)
	}
	return fmt.Sprintf("payment processor returned status %d: %s", e.StatusCode, e.RawBody)
}

func (e *ProcessorError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed store operation. For webhook handling it
// maps to a retryable server error so the processor redelivers.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
