package payroll

import (
	"context"
)

type PayrollService interface {
	UpsertSalary(ctx context.Context, req UpsertSalaryRequest) (SalaryResponse, error)
	GetEmployeeSalary(ctx context.Context, id string) (SalaryResponse, error)
	GetMySalary(ctx context.Context) (SalaryResponse, error)

	// BuildPayslip assembles the caller's payslip for the requested month
	BuildPayslip(ctx context.Context, req PayslipRequest) (Payslip, error)

	// RenderPayslipPDF returns the caller's payslip as a PDF document
	RenderPayslipPDF(ctx context.Context, req PayslipRequest) (PayslipPDF, error)
}
