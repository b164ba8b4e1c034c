package types

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
