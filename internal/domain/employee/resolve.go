package employee

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
)

// ForPrincipal returns the employee record behind the caller, preferring the
// employee_id claim and falling back to the identity link.
func ForPrincipal(ctx context.Context, repo EmployeeRepository, p auth.Principal) (Employee, error) {
	var (
		emp Employee
		err error
	)
	if p.EmployeeID != "" {
		emp, err = repo.GetByID(ctx, p.EmployeeID)
	} else {
		emp, err = repo.GetByUserID(ctx, p.UserID)
	}
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return Employee{}, ErrNotAnEmployee
		}
		return Employee{}, err
	}
	return emp, nil
}

// Lookup finds an employee by employee id, then by user id.
func Lookup(ctx context.Context, repo EmployeeRepository, id string) (Employee, error) {
	emp, err := repo.GetByID(ctx, id)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, ErrEmployeeNotFound) {
		return Employee{}, err
	}
	return repo.GetByUserID(ctx, id)
}

// CompanyIDForPrincipal resolves the company the caller acts for: the company of
// their employee record, else the company_id claim.
func CompanyIDForPrincipal(ctx context.Context, repo EmployeeRepository, p auth.Principal) (string, error) {
	emp, err := ForPrincipal(ctx, repo, p)
	if err == nil && emp.CompanyID != "" {
		return emp.CompanyID, nil
	}
	if err != nil && !errors.Is(err, ErrNotAnEmployee) {
		return "", err
	}
	if p.CompanyID != "" {
		return p.CompanyID, nil
	}
	return "", ErrCompanyNotResolved
}

// SameCompany reports whether the employee belongs to the company the caller acts
// for. Callers bound to no company see every employee.
func SameCompany(ctx context.Context, repo EmployeeRepository, p auth.Principal, employeeID string) (bool, error) {
	companyID, err := CompanyIDForPrincipal(ctx, repo, p)
	if errors.Is(err, ErrCompanyNotResolved) {
		return true, nil
	}
	if err != nil {
		return false, err
	}

	emp, err := repo.GetByID(ctx, employeeID)
	if errors.Is(err, ErrEmployeeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return emp.CompanyID == companyID, nil
}
