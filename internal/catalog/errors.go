// internal/catalog/errors.go
package catalog

import "errors"

// Sentinel failures surfaced by the engine. Callers match them with
// errors.Is; wrapped messages carry the offending ids. None of them are
// transient and none leave partial state behind.
var (
	// ErrInvalid reports a record that failed construction validation.
	ErrInvalid = errors.New("invalid record")

	// ErrDuplicateKey reports an id that is already registered.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound reports an id with no matching record.
	ErrNotFound = errors.New("not found")

	// ErrItemLoaned reports an attempt to remove an item with an active loan.
	ErrItemLoaned = errors.New("item is currently loaned")

	// ErrHolderHasLoans reports an attempt to deregister a holder that still
	// holds items.
	ErrHolderHasLoans = errors.New("holder has active loans")

	// ErrAlreadyLoaned reports a loan attempt on an item that is already
	// loaned; the wrapped message names the current holder.
	ErrAlreadyLoaned = errors.New("item is already loaned")

	// ErrNotLoaned reports a return attempt on an item with no active loan.
	ErrNotLoaned = errors.New("item is not loaned")
)
