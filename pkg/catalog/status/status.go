// Package status exports errors produced by the catalog package.
package status

import (
	"github.com/oneconcern/domx/pkg/errors"
)

var (
	// ErrClosed indicates an operation on a closed catalog
	ErrClosed = errors.New("catalog is closed")

	// ErrNotFound indicates an object was not found in a catalog
	ErrNotFound = errors.New("object not found")

	// ErrEmptyKey indicates an operation with an empty object key
	ErrEmptyKey = errors.New("empty key")

	// ErrInvalidName indicates a catalog name which cannot be mapped to a directory
	ErrInvalidName = errors.New("invalid catalog name")

	// ErrNotDirectory indicates that the path of a catalog exists but is not a directory
	ErrNotDirectory = errors.New("catalog path is not a directory")

	// ErrNotRegistered indicates that a catalog is not listed in the system catalog
	ErrNotRegistered = errors.New("catalog is not registered")

	// ErrDestinationClosed indicates a move to a missing or closed catalog
	ErrDestinationClosed = errors.New("destination catalog is not open")

	// ErrWatch indicates that change notifications are not available for a catalog
	ErrWatch = errors.New("cannot watch catalog")
)
