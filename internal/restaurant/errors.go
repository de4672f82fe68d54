package restaurant

import "errors"

var (
	// ErrNotFound reports an unknown entity id or table number.
	ErrNotFound = errors.New("not found")
	// ErrValidation reports missing or invalid required fields.
	ErrValidation = errors.New("validation failed")
	// ErrTableUnavailable reports a table that is not in the state an
	// operation requires, including reservation conflicts.
	ErrTableUnavailable = errors.New("table unavailable")
	// ErrDuplicateID reports an id collision on insert.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrStorage reports a failure in the underlying store.
	ErrStorage = errors.New("storage failure")
)
