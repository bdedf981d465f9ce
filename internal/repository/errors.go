// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. Entity
// specific errors wrap ErrNotFound, so errors.Is(err, ErrNotFound) holds
// for all of them.
package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested row does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrInvalid is returned when a record fails validation before it reaches
// the database.
var ErrInvalid = errors.New("invalid")

var (
	ErrVenueNotFound  = fmt.Errorf("venue %w", ErrNotFound)
	ErrArtistNotFound = fmt.Errorf("artist %w", ErrNotFound)
	ErrShowNotFound   = fmt.Errorf("show %w", ErrNotFound)
)
