package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx database.Transactor
	payroll.SalaryRepository
	leave.LeaveApplicationRepository
	employee.EmployeeRepository
	location *time.Location
	now      func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	salaryRepo payroll.SalaryRepository,
	applicationRepo leave.LeaveApplicationRepository,
	employeeRepo employee.EmployeeRepository,
	location *time.Location,
	now func() time.Time,
) payroll.PayrollService {
	if location == nil {
		location = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &PayrollServiceImpl{
		tx:                         tx,
		SalaryRepository:           salaryRepo,
		LeaveApplicationRepository: applicationRepo,
		EmployeeRepository:         employeeRepo,
		location:                   location,
		now:                        now,
	}
}

func (p *PayrollServiceImpl) today() time.Time {
	y, m, d := p.now().In(p.location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p *PayrollServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	return employee.ForPrincipal(ctx, p.EmployeeRepository, principal)
}

// UpsertSalary implements payroll.PayrollService.
func (p *PayrollServiceImpl) UpsertSalary(ctx context.Context, req payroll.UpsertSalaryRequest) (payroll.SalaryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryResponse{}, err
	}

	emp, err := employee.Lookup(ctx, p.EmployeeRepository, req.EmployeeID)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	var saved payroll.Salary
	err = p.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		salary := payroll.Salary{
			EmployeeID:    emp.ID,
			Allowances:    map[string]decimal.Decimal{},
			Deductions:    map[string]decimal.Decimal{},
			EffectiveFrom: p.today(),
		}

		existing, err := p.SalaryRepository.GetByEmployeeID(ctx, emp.ID)
		switch {
		case err == nil:
			salary.Allowances = existing.Allowances
			salary.Deductions = existing.Deductions
			salary.EffectiveFrom = existing.EffectiveFrom
		case errors.Is(err, payroll.ErrSalaryNotFound):
		default:
			return err
		}

		salary.BaseSalary = *req.BaseSalary
		salary.IsActive = true
		if req.Allowances != nil {
			salary.Allowances = req.Allowances
		}
		if req.Deductions != nil {
			salary.Deductions = req.Deductions
		}
		if req.ParsedEffectiveFrom != nil {
			salary.EffectiveFrom = *req.ParsedEffectiveFrom
		}

		saved, err = p.SalaryRepository.Upsert(ctx, salary)
		return err
	})
	if err != nil {
		return payroll.SalaryResponse{}, fmt.Errorf("failed to save salary: %w", err)
	}

	slog.Info("salary structure saved", "employee_id", emp.ID, "net_salary", saved.NetSalary().String())
	return payroll.NewSalaryResponse(saved), nil
}

// GetEmployeeSalary implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetEmployeeSalary(ctx context.Context, id string) (payroll.SalaryResponse, error) {
	emp, err := employee.Lookup(ctx, p.EmployeeRepository, id)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	salary, err := p.SalaryRepository.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	return payroll.NewSalaryResponse(salary), nil
}

// GetMySalary implements payroll.PayrollService.
func (p *PayrollServiceImpl) GetMySalary(ctx context.Context) (payroll.SalaryResponse, error) {
	emp, err := p.currentEmployee(ctx)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}

	salary, err := p.SalaryRepository.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		return payroll.SalaryResponse{}, err
	}
	return payroll.NewSalaryResponse(salary), nil
}

// BuildPayslip implements payroll.PayrollService. Leave days are the approved
// days that fall inside the requested month.
func (p *PayrollServiceImpl) BuildPayslip(ctx context.Context, req payroll.PayslipRequest) (payroll.Payslip, error) {
	emp, err := p.currentEmployee(ctx)
	if err != nil {
		return payroll.Payslip{}, err
	}

	today := p.today()
	year, month := today.Year(), int(today.Month())
	if req.Year != nil {
		year = *req.Year
	}
	if req.Month != nil {
		month = *req.Month
	}
	if month < 1 || month > 12 {
		return payroll.Payslip{}, payroll.ErrInvalidPeriod
	}

	salary, err := p.SalaryRepository.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	from, to := leave.MonthBounds(year, time.Month(month))
	approved, err := p.LeaveApplicationRepository.ListApprovedOverlapping(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to load approved leave: %w", err)
	}

	leaveDays := 0
	for _, a := range approved {
		leaveDays += leave.ClippedDays(a.StartDate, a.EndDate, from, to)
	}

	return payroll.Payslip{
		Employee: payroll.PayslipEmployee{
			Name:        emp.Name,
			Email:       emp.Email,
			Designation: emp.Designation,
			Department:  emp.Department,
		},
		Period: payroll.PayslipPeriod{Month: month, Year: year},
		Salary: payroll.PayslipSalary{
			BaseSalary:      salary.BaseSalary,
			Allowances:      salary.Allowances,
			Deductions:      salary.Deductions,
			TotalAllowances: salary.TotalAllowances(),
			TotalDeductions: salary.TotalDeductions(),
			NetSalary:       salary.NetSalary(),
		},
		Attendance: payroll.PayslipAttendance{TotalLeaveDays: leaveDays},
	}, nil
}

// RenderPayslipPDF implements payroll.PayrollService.
func (p *PayrollServiceImpl) RenderPayslipPDF(ctx context.Context, req payroll.PayslipRequest) (payroll.PayslipPDF, error) {
	slip, err := p.BuildPayslip(ctx, req)
	if err != nil {
		return payroll.PayslipPDF{}, err
	}

	content, err := renderPayslip(slip)
	if err != nil {
		return payroll.PayslipPDF{}, fmt.Errorf("failed to render payslip: %w", err)
	}

	return payroll.PayslipPDF{
		FileName: fmt.Sprintf("payslip-%d-%02d.pdf", slip.Period.Year, slip.Period.Month),
		Content:  content,
	}, nil
}
