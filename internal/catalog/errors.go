package catalog

import "errors"

var (
	// ErrEmptyPath is returned when a record would be stored without a path.
	ErrEmptyPath = errors.New("record path is empty")
	// ErrNotFound is returned by operations that require an existing record.
	ErrNotFound = errors.New("record not found")
)
