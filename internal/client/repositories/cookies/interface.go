package cookies

import (
	"context"
	"time"
)

// Record is one stored cookie.
type Record struct {
	Origin   string
	Name     string
	Path     string
	Value    string
	Domain   string
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
	SameSite int
}

// Repository stores cookies per origin.
type Repository interface {
	// Upsert inserts the record or replaces the one with the same key.
	Upsert(ctx context.Context, r *Record) error

	// Delete removes a single cookie. Deleting a missing cookie is not an error.
	Delete(ctx context.Context, origin, name, path string) error

	// ListByOrigin returns all cookies stored for origin, ordered by name.
	ListByOrigin(ctx context.Context, origin string) ([]*Record, error)

	// Clear removes every stored cookie.
	Clear(ctx context.Context) error
}
