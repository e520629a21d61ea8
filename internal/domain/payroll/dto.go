package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// SALARY DTOs
// ========================================

// UpsertSalaryRequest writes an employee's salary. Omitted maps and effective date keep
// their stored values.
type UpsertSalaryRequest struct {
	EmployeeID    string                     `json:"employee_id"`
	BaseSalary    *decimal.Decimal           `json:"base_salary"`
	Allowances    map[string]decimal.Decimal `json:"allowances,omitempty"`
	Deductions    map[string]decimal.Decimal `json:"deductions,omitempty"`
	EffectiveFrom *string                    `json:"effective_from,omitempty"`

	ParsedEffectiveFrom *time.Time `json:"-"`
}

func (r *UpsertSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.BaseSalary == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary is required",
		})
	} else if r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "base_salary",
			Message: "base_salary must not be negative",
		})
	}

	for name, amount := range r.Allowances {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "allowances." + name,
				Message: "allowance amount must not be negative",
			})
		}
	}
	for name, amount := range r.Deductions {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "deductions." + name,
				Message: "deduction amount must not be negative",
			})
		}
	}

	if r.EffectiveFrom != nil {
		if d, ok := validator.IsValidDate(*r.EffectiveFrom); ok {
			r.ParsedEffectiveFrom = &d
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_from",
				Message: "effective_from must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryResponse struct {
	ID              string                     `json:"id"`
	EmployeeID      string                     `json:"employee_id"`
	BaseSalary      decimal.Decimal            `json:"base_salary"`
	Allowances      map[string]decimal.Decimal `json:"allowances"`
	Deductions      map[string]decimal.Decimal `json:"deductions"`
	TotalAllowances decimal.Decimal            `json:"total_allowances"`
	TotalDeductions decimal.Decimal            `json:"total_deductions"`
	NetSalary       decimal.Decimal            `json:"net_salary"`
	EffectiveFrom   string                     `json:"effective_from"`
	IsActive        bool                       `json:"is_active"`
	UpdatedAt       string                     `json:"updated_at"`
}

func NewSalaryResponse(s Salary) SalaryResponse {
	return SalaryResponse{
		ID:              s.ID,
		EmployeeID:      s.EmployeeID,
		BaseSalary:      s.BaseSalary,
		Allowances:      nonNil(s.Allowances),
		Deductions:      nonNil(s.Deductions),
		TotalAllowances: s.TotalAllowances(),
		TotalDeductions: s.TotalDeductions(),
		NetSalary:       s.NetSalary(),
		EffectiveFrom:   s.EffectiveFrom.Format(validator.DateLayout),
		IsActive:        s.IsActive,
		UpdatedAt:       s.UpdatedAt.Format(time.RFC3339),
	}
}

func nonNil(m map[string]decimal.Decimal) map[string]decimal.Decimal {
	if m == nil {
		return map[string]decimal.Decimal{}
	}
	return m
}

// ========================================
// PAYSLIP DTOs
// ========================================

type PayslipRequest struct {
	Month *int `json:"month,omitempty"`
	Year  *int `json:"year,omitempty"`
}

type PayslipEmployee struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

type PayslipPeriod struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

type PayslipSalary struct {
	BaseSalary      decimal.Decimal            `json:"base_salary"`
	Allowances      map[string]decimal.Decimal `json:"allowances"`
	Deductions      map[string]decimal.Decimal `json:"deductions"`
	TotalAllowances decimal.Decimal            `json:"total_allowances"`
	TotalDeductions decimal.Decimal            `json:"total_deductions"`
	NetSalary       decimal.Decimal            `json:"net_salary"`
}

type PayslipAttendance struct {
	TotalLeaveDays int `json:"total_leave_days"`
}

// Payslip is a read-only monthly statement.
type Payslip struct {
	Employee   PayslipEmployee   `json:"employee"`
	Period     PayslipPeriod     `json:"period"`
	Salary     PayslipSalary     `json:"salary"`
	Attendance PayslipAttendance `json:"attendance"`
}

type PayslipPDF struct {
	FileName string
	Content  []byte
}
