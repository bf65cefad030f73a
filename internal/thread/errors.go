package thread

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated is returned when an operation that needs a signed-in
// viewer is called with a zero Viewer.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrNotOwner marks a delete that matched no row owned by the viewer. It
// surfaces wrapped in a StoreError because ownership is enforced by the
// store's scoped query, not re-checked here.
var ErrNotOwner = errors.New("comment not found or not owned by viewer")

// ValidationError rejects input before any store write is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StoreError wraps a read or write the store rejected. The store does not
// distinguish authorization denial from constraint violation or transport
// failure, so neither does this package.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}
