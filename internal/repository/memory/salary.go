package memory

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type salaryRepository struct {
	s *Store
}

func NewSalaryRepository(s *Store) payroll.SalaryRepository {
	return &salaryRepository{s: s}
}

func (r *salaryRepository) Upsert(ctx context.Context, salary payroll.Salary) (payroll.Salary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	if existing, ok := r.s.salaries[salary.EmployeeID]; ok {
		salary.ID = existing.ID
		salary.CreatedAt = existing.CreatedAt
	} else {
		salary.ID = uuid.NewString()
		salary.CreatedAt = now
	}
	salary.Allowances = copyAmounts(salary.Allowances)
	salary.Deductions = copyAmounts(salary.Deductions)
	salary.UpdatedAt = now
	r.s.salaries[salary.EmployeeID] = salary
	return salary, nil
}

func (r *salaryRepository) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.Salary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	s, ok := r.s.salaries[employeeID]
	if !ok || !s.IsActive {
		return payroll.Salary{}, payroll.ErrSalaryNotFound
	}
	s.Allowances = copyAmounts(s.Allowances)
	s.Deductions = copyAmounts(s.Deductions)
	return s, nil
}

func copyAmounts(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
