package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/google/uuid"
)

type employeeRepository struct {
	s *Store
}

func NewEmployeeRepository(s *Store) employee.EmployeeRepository {
	return &employeeRepository{s: s}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	emp, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, emp := range r.s.employees {
		if emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepository) ListByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []employee.Employee{}
	for _, emp := range r.s.employees {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Create stores the employee including its identity fields.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, emp := range r.s.employees {
		if emp.UserID == newEmployee.UserID || emp.ID == newEmployee.ID {
			return employee.Employee{}, employee.ErrEmployeeExists
		}
	}
	if newEmployee.ID == "" {
		newEmployee.ID = uuid.NewString()
	}
	if newEmployee.UserID == "" {
		newEmployee.UserID = uuid.NewString()
	}
	newEmployee.CreatedAt = r.s.now()
	r.s.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}
