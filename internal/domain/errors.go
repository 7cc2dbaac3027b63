package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ConflictError represents a duplicate-participation violation. The database
// uniqueness constraint is the authoritative source of these; the advisory
// pre-check in the workflows produces them too.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string {
	if e.Reason == "" {
		return "conflict"
	}
	return e.Reason
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// ErrConflict is the sentinel error for duplicate participation.
var ErrConflict = ConflictError{}

// ValidationError represents user-correctable input problems, including
// time-window violations. Reason is surfaced verbatim to the caller.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	if e.Reason == "" {
		return "validation failed"
	}
	return e.Reason
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

// ErrValidation is the sentinel error for validation failures.
var ErrValidation = ValidationError{}

// Ledger failure modes. Unreachability is only a hard error at the health
// boundary; workflows treat it per their own criticality rules.
var (
	ErrLedgerUnreachable   = fmt.Errorf("ledger unreachable")
	ErrConfirmationTimeout = fmt.Errorf("transaction confirmation timed out")
	ErrTxnInvalid          = fmt.Errorf("invalid ledger transaction")
)
