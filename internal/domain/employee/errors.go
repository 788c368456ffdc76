package employee

import "errors"

var (
	ErrNotFound      = errors.New("employee not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidSalary = errors.New("salary must be a non-negative number")
	ErrInvalidRole   = errors.New("role must be admin or employee")
)
