package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrCommodityNotFound  = errors.New("commodity does not exist")

	// ErrForbidden is the root of every authorization failure.
	ErrForbidden        = errors.New("access forbidden")
	ErrRoleNotPermitted = fmt.Errorf("%w: customers cannot create commodities", ErrForbidden)
	ErrNotOwner         = fmt.Errorf("%w: only the owning business may modify this commodity", ErrForbidden)

	// ErrStoreUnavailable marks failures of the underlying persistence layer.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// StoreError wraps err so that it matches ErrStoreUnavailable while keeping
// the driver error for logs.
func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreUnavailable, op, err)
}
