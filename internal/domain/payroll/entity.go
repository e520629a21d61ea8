package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salary is the single active pay structure of an employee.
type Salary struct {
	ID            string
	EmployeeID    string
	BaseSalary    decimal.Decimal
	Allowances    map[string]decimal.Decimal
	Deductions    map[string]decimal.Decimal
	EffectiveFrom time.Time
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s Salary) TotalAllowances() decimal.Decimal {
	return sum(s.Allowances)
}

func (s Salary) TotalDeductions() decimal.Decimal {
	return sum(s.Deductions)
}

// NetSalary = base + allowances - deductions
func (s Salary) NetSalary() decimal.Decimal {
	return s.BaseSalary.Add(s.TotalAllowances()).Sub(s.TotalDeductions())
}

func sum(m map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}
