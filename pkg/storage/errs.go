package storage

import "errors"

var (
	// ErrInvalidSize indicates a registration with a non-positive virtual size.
	ErrInvalidSize = errors.New("storage: virtual size must be positive")

	// ErrEmptyName indicates a registration with an empty or blank file name.
	ErrEmptyName = errors.New("storage: file name is empty")

	// ErrNotFound indicates an operation on a name that is not tracked.
	ErrNotFound = errors.New("storage: file not tracked")

	// ErrNoData indicates an analytics query while the ledger is empty.
	ErrNoData = errors.New("storage: no files tracked")
)
