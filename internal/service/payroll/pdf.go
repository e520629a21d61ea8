package payroll

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

func renderPayslip(slip payroll.Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", slip.Employee.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", slip.Employee.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Designation: %s (%s)", slip.Employee.Designation, slip.Employee.Department))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s %d", time.Month(slip.Period.Month), slip.Period.Year))
	pdf.Ln(10)

	line := func(label string, amount decimal.Decimal) {
		pdf.CellFormat(120, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, amount.StringFixed(2), "", 1, "R", false, 0, "")
	}

	line("Base salary", slip.Salary.BaseSalary)
	for _, name := range slices.Sorted(maps.Keys(slip.Salary.Allowances)) {
		line("  + "+name, slip.Salary.Allowances[name])
	}
	for _, name := range slices.Sorted(maps.Keys(slip.Salary.Deductions)) {
		line("  - "+name, slip.Salary.Deductions[name])
	}

	pdf.SetFont("Helvetica", "B", 12)
	line("Total allowances", slip.Salary.TotalAllowances)
	line("Total deductions", slip.Salary.TotalDeductions)
	line("Net salary", slip.Salary.NetSalary)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Approved leave days: %d", slip.Attendance.TotalLeaveDays))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
