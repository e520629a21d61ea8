package payroll

import (
	"context"
)

type SalaryRepository interface {
	// Upsert writes the salary keyed by employee, overwriting any existing structure
	Upsert(ctx context.Context, salary Salary) (Salary, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Salary, error)
}
