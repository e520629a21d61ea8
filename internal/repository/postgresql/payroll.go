package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) payroll.SalaryRepository {
	return &salaryRepository{db: db}
}

const salaryColumns = `id, employee_id, base_salary, allowances, deductions, effective_from, is_active, created_at, updated_at`

func scanSalary(row pgx.Row) (payroll.Salary, error) {
	var (
		s                                payroll.Salary
		allowancesBytes, deductionsBytes []byte
	)
	err := row.Scan(
		&s.ID, &s.EmployeeID, &s.BaseSalary, &allowancesBytes, &deductionsBytes,
		&s.EffectiveFrom, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.Salary{}, err
	}

	s.Allowances = map[string]decimal.Decimal{}
	s.Deductions = map[string]decimal.Decimal{}
	if err := json.Unmarshal(allowancesBytes, &s.Allowances); err != nil {
		return payroll.Salary{}, fmt.Errorf("decode allowances: %w", err)
	}
	if err := json.Unmarshal(deductionsBytes, &s.Deductions); err != nil {
		return payroll.Salary{}, fmt.Errorf("decode deductions: %w", err)
	}
	return s, nil
}

// Upsert implements payroll.SalaryRepository.
func (r *salaryRepository) Upsert(ctx context.Context, salary payroll.Salary) (payroll.Salary, error) {
	q := GetQuerier(ctx, r.db)

	allowancesJSON, err := json.Marshal(nonNilAmounts(salary.Allowances))
	if err != nil {
		return payroll.Salary{}, fmt.Errorf("encode allowances: %w", err)
	}
	deductionsJSON, err := json.Marshal(nonNilAmounts(salary.Deductions))
	if err != nil {
		return payroll.Salary{}, fmt.Errorf("encode deductions: %w", err)
	}

	query := `
		INSERT INTO salaries (employee_id, base_salary, allowances, deductions, effective_from, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id) DO UPDATE SET
			base_salary = EXCLUDED.base_salary,
			allowances = EXCLUDED.allowances,
			deductions = EXCLUDED.deductions,
			effective_from = EXCLUDED.effective_from,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING ` + salaryColumns

	saved, err := scanSalary(q.QueryRow(ctx, query,
		salary.EmployeeID,
		salary.BaseSalary,
		string(allowancesJSON),
		string(deductionsJSON),
		salary.EffectiveFrom,
		salary.IsActive,
	))
	if err != nil {
		return payroll.Salary{}, fmt.Errorf("failed to upsert salary: %w", err)
	}
	return saved, nil
}

// GetByEmployeeID implements payroll.SalaryRepository.
func (r *salaryRepository) GetByEmployeeID(ctx context.Context, employeeID string) (payroll.Salary, error) {
	if !validID(employeeID) {
		return payroll.Salary{}, payroll.ErrSalaryNotFound
	}
	q := GetQuerier(ctx, r.db)

	s, err := scanSalary(q.QueryRow(ctx, `SELECT `+salaryColumns+` FROM salaries WHERE employee_id = $1 AND is_active = TRUE`, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Salary{}, payroll.ErrSalaryNotFound
		}
		return payroll.Salary{}, fmt.Errorf("failed to get salary: %w", err)
	}
	return s, nil
}

func nonNilAmounts(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	if m == nil {
		return map[string]decimal.Decimal{}
	}
	return m
}
