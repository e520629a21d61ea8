package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.user_id, e.company_id, e.designation, e.department, e.shift, e.created_at,
		u.name, u.email
	FROM employees e
	INNER JOIN users u ON u.id = e.user_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.UserID, &emp.CompanyID, &emp.Designation, &emp.Department, &emp.Shift, &emp.CreatedAt,
		&emp.Name, &emp.Email,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !validID(id) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}
	return emp, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	if !validID(userID) {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	q := GetQuerier(ctx, e.db)

	emp, err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id: %w", err)
	}
	return emp, nil
}

// ListByCompanyID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if !validID(companyID) {
		return []employee.Employee{}, nil
	}
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, employeeSelect+` WHERE e.company_id = $1 ORDER BY u.name`, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Create implements employee.EmployeeRepository. The linked user must already exist.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (user_id, company_id, designation, department, shift)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.UserID,
		newEmployee.CompanyID,
		newEmployee.Designation,
		newEmployee.Department,
		newEmployee.Shift,
	).Scan(&newEmployee.ID, &newEmployee.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "employees_user_id_key") {
			return employee.Employee{}, employee.ErrEmployeeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e.GetByID(ctx, newEmployee.ID)
}
