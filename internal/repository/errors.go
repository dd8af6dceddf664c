// Package repository holds the sentinel errors shared between the store
// implementations and the domain services. The repository interfaces
// themselves live next to the domain models that consume them.
package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
)
