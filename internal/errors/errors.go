package errors

import (
	"errors"
)

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrTooManyRequests    = errors.New("too many requests")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidSession     = errors.New("invalid session")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrKeyNotFound        = errors.New("key not found")
	ErrMailNotConfigured  = errors.New("mail transport not configured")
)
