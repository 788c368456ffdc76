package payroll

import "errors"

var (
	ErrNotFound      = errors.New("employee period not found")
	ErrInvalidStatus = errors.New("status must be pending, awaiting_pay or ready_for_dir")
)
