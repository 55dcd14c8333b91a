package idempotency

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const Header = "Idempotency-Key"

// Pending is the value held by a reserved key until the request completes.
const Pending = "pending"

var ErrNotFound = errors.New("idempotency key not found")

// Store remembers which client requests have already been processed.
type Store interface {
	// Reserve claims key. It returns false if the key is already taken.
	Reserve(ctx context.Context, key string) (bool, error)
	// Complete records the result reference for a reserved key.
	Complete(ctx context.Context, key, value string) error
	// Lookup returns the value stored for key, Pending while in flight.
	Lookup(ctx context.Context, key string) (string, error)
	// Release frees a reserved key so the client can retry.
	Release(ctx context.Context, key string) error
}

func Key(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(Header))
}
