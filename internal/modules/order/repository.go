package order

import (
	"context"
	"time"
)

// Repository defines data access for orders.
type Repository interface {
	// Create persists a new order in a single write. A reused idempotency key yields
	// ErrDuplicateSubmission.
	Create(ctx context.Context, o *Order) error

	// GetByID returns ErrNotFound for unknown or malformed ids.
	GetByID(ctx context.Context, id string) (*Order, error)

	GetByIdempotencyKey(ctx context.Context, key string) (*Order, error)

	// List returns orders newest first, optionally filtered by status.
	List(ctx context.Context, status Status) ([]*Order, error)

	// ListByCustomer returns the orders placed by one Telegram user, newest first.
	ListByCustomer(ctx context.Context, telegramUserID int64) ([]*Order, error)

	// UpdateStatus changes only status and updated_at.
	UpdateStatus(ctx context.Context, id string, status Status, at time.Time) error
}
