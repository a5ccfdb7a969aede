package domain

import "errors"

var (
	// ErrNotFound means no record matched the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate means a unique constraint (email, orderId) was violated.
	ErrDuplicate = errors.New("duplicate key")
	// ErrInvalidCredential means identity verification failed.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrValidation marks a bad request payload; wrap it with the reason.
	ErrValidation = errors.New("validation failed")
)
