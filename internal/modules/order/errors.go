package order

import "errors"

var (
	// ErrValidation: the request is incomplete or malformed. Nothing was persisted.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidTransition: the status graph does not allow the change. Nothing was persisted.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrPersistence: the store rejected or failed the write.
	ErrPersistence = errors.New("persistence failed")
	ErrNotFound    = errors.New("order not found")
	// ErrDuplicateSubmission: the same idempotency key is still being processed.
	ErrDuplicateSubmission = errors.New("order submission already in progress")
)
