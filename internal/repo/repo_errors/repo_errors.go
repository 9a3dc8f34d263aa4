package repo_errors

import "errors"

var (
	ErrNotFound = errors.New("entity not found")
	// ErrConflict is returned when a conditional write affected no rows or a
	// serializing retry loop ran out of attempts.
	ErrConflict = errors.New("concurrent update conflict")
)
