package payroll

import "errors"

var (
	ErrSalaryNotFound = errors.New("salary structure not found")
	ErrInvalidPeriod  = errors.New("month must be between 1 and 12")
)
