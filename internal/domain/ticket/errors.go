package ticket

import "errors"

var (
	ErrNotFound     = errors.New("ticket not found")
	ErrInvalidHours = errors.New("hours worked must be a positive number")
)
