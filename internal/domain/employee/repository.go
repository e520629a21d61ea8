package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
}
