package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeavePolicyRepository
	leave.LeaveApplicationRepository
	employee.EmployeeRepository
	location *time.Location
	now      func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	policyRepo leave.LeavePolicyRepository,
	applicationRepo leave.LeaveApplicationRepository,
	employeeRepo employee.EmployeeRepository,
	location *time.Location,
	now func() time.Time,
) leave.LeaveService {
	if location == nil {
		location = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &LeaveServiceImpl{
		tx:                         tx,
		LeavePolicyRepository:      policyRepo,
		LeaveApplicationRepository: applicationRepo,
		EmployeeRepository:         employeeRepo,
		location:                   location,
		now:                        now,
	}
}

func (l *LeaveServiceImpl) currentYear() int {
	return l.now().In(l.location).Year()
}

func (l *LeaveServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	return employee.ForPrincipal(ctx, l.EmployeeRepository, principal)
}

// ========== POLICIES ==========

// CreatePolicy implements leave.LeaveService.
func (l *LeaveServiceImpl) CreatePolicy(ctx context.Context, req leave.CreatePolicyRequest) (leave.LeavePolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeavePolicyResponse{}, err
	}

	policy := leave.LeavePolicy{
		Name:             strings.TrimSpace(req.Name),
		MaxDaysPerYear:   *req.MaxDaysPerYear,
		RequiresApproval: true,
		ApplicableRoles:  req.ApplicableRoles,
	}
	if req.CarryForward != nil {
		policy.CarryForward = *req.CarryForward
	}
	if req.RequiresApproval != nil {
		policy.RequiresApproval = *req.RequiresApproval
	}

	created, err := l.LeavePolicyRepository.Create(ctx, policy)
	if err != nil {
		if errors.Is(err, leave.ErrPolicyNameExists) {
			return leave.LeavePolicyResponse{}, err
		}
		return leave.LeavePolicyResponse{}, fmt.Errorf("failed to create leave policy: %w", err)
	}
	return leave.NewLeavePolicyResponse(created), nil
}

// ListPolicies implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPolicies(ctx context.Context) ([]leave.LeavePolicyResponse, error) {
	policies, err := l.LeavePolicyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave policies: %w", err)
	}

	out := make([]leave.LeavePolicyResponse, 0, len(policies))
	for _, p := range policies {
		out = append(out, leave.NewLeavePolicyResponse(p))
	}
	return out, nil
}

// UpdatePolicy implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdatePolicy(ctx context.Context, req leave.UpdatePolicyRequest) (leave.LeavePolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeavePolicyResponse{}, err
	}

	policy, err := l.LeavePolicyRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeavePolicyResponse{}, err
	}

	if req.Name != nil {
		policy.Name = strings.TrimSpace(*req.Name)
	}
	if req.MaxDaysPerYear != nil {
		policy.MaxDaysPerYear = *req.MaxDaysPerYear
	}
	if req.CarryForward != nil {
		policy.CarryForward = *req.CarryForward
	}
	if req.RequiresApproval != nil {
		policy.RequiresApproval = *req.RequiresApproval
	}
	if req.ApplicableRoles != nil {
		policy.ApplicableRoles = req.ApplicableRoles
	}

	updated, err := l.LeavePolicyRepository.Update(ctx, policy)
	if err != nil {
		if errors.Is(err, leave.ErrPolicyNotFound) || errors.Is(err, leave.ErrPolicyNameExists) {
			return leave.LeavePolicyResponse{}, err
		}
		return leave.LeavePolicyResponse{}, fmt.Errorf("failed to update leave policy: %w", err)
	}
	return leave.NewLeavePolicyResponse(updated), nil
}

// ========== BALANCE ==========

// RemainingBalance implements leave.LeaveService. Approved applications count toward
// the year their start date falls in.
func (l *LeaveServiceImpl) RemainingBalance(ctx context.Context, employeeID string, policy leave.LeavePolicy, year int) (int, error) {
	from, to := leave.YearBounds(year)
	used, err := l.LeaveApplicationRepository.SumApprovedDays(ctx, employeeID, policy.ID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to compute used leave days: %w", err)
	}
	return leave.RemainingBalance(policy, used), nil
}

// GetMyBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyBalances(ctx context.Context, year *int) ([]leave.LeaveBalanceResponse, error) {
	emp, err := l.currentEmployee(ctx)
	if err != nil {
		return nil, err
	}

	y := l.currentYear()
	if year != nil {
		y = *year
	}

	policies, err := l.LeavePolicyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave policies: %w", err)
	}

	out := make([]leave.LeaveBalanceResponse, 0, len(policies))
	for _, p := range policies {
		remaining, err := l.RemainingBalance(ctx, emp.ID, p, y)
		if err != nil {
			return nil, err
		}
		out = append(out, leave.LeaveBalanceResponse{
			LeavePolicyID:  p.ID,
			PolicyName:     p.Name,
			Year:           y,
			MaxDaysPerYear: p.MaxDaysPerYear,
			UsedDays:       p.MaxDaysPerYear - remaining,
			RemainingDays:  remaining,
		})
	}
	return out, nil
}

// ========== APPLICATIONS ==========

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveApplicationResponse, error) {
	emp, err := l.currentEmployee(ctx)
	if err != nil {
		return leave.LeaveApplicationResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveApplicationResponse{}, err
	}

	policy, err := l.LeavePolicyRepository.GetByID(ctx, req.LeavePolicyID)
	if err != nil {
		return leave.LeaveApplicationResponse{}, err
	}

	daysCount := leave.InclusiveDays(req.ParsedStartDate, req.ParsedEndDate)
	if daysCount <= 0 {
		return leave.LeaveApplicationResponse{}, leave.ErrInvalidDateRange
	}

	var created leave.LeaveApplication
	err = l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := l.LeaveApplicationRepository.ExistsActiveByStartDate(ctx, emp.ID, req.ParsedStartDate)
		if err != nil {
			return err
		}
		if exists {
			return leave.ErrDuplicateApplication
		}

		remaining, err := l.RemainingBalance(ctx, emp.ID, policy, l.currentYear())
		if err != nil {
			return err
		}
		if daysCount > remaining {
			return fmt.Errorf("%w. Remaining: %d, Requested: %d", leave.ErrInsufficientBalance, remaining, daysCount)
		}

		created, err = l.LeaveApplicationRepository.Create(ctx, leave.LeaveApplication{
			EmployeeID:    emp.ID,
			LeavePolicyID: policy.ID,
			StartDate:     req.ParsedStartDate,
			EndDate:       req.ParsedEndDate,
			DaysCount:     daysCount,
			Reason:        req.Reason,
			Status:        leave.StatusPending,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, leave.ErrDuplicateApplication) || errors.Is(err, leave.ErrInsufficientBalance) {
			return leave.LeaveApplicationResponse{}, err
		}
		return leave.LeaveApplicationResponse{}, fmt.Errorf("failed to submit leave application: %w", err)
	}

	created.PolicyName = policy.Name
	slog.Info("leave application submitted", "employee_id", emp.ID, "policy", policy.Name, "days", daysCount)
	return leave.NewLeaveApplicationResponse(created), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveApplicationResponse, error) {
	return l.decide(ctx, id, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, id string) (leave.LeaveApplicationResponse, error) {
	return l.decide(ctx, id, leave.StatusRejected)
}

func (l *LeaveServiceImpl) decide(ctx context.Context, id string, status leave.Status) (leave.LeaveApplicationResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return leave.LeaveApplicationResponse{}, err
	}

	application, err := l.LeaveApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveApplicationResponse{}, err
	}
	ok, err := employee.SameCompany(ctx, l.EmployeeRepository, principal, application.EmployeeID)
	if err != nil {
		return leave.LeaveApplicationResponse{}, err
	}
	if !ok {
		return leave.LeaveApplicationResponse{}, leave.ErrApplicationNotFound
	}
	if application.Status != leave.StatusPending {
		return leave.LeaveApplicationResponse{}, fmt.Errorf("leave application is already %s: %w", application.Status, leave.ErrApplicationAlreadyDecided)
	}

	updated, err := l.LeaveApplicationRepository.UpdateStatus(ctx, id, status, principal.UserID)
	if err != nil {
		if errors.Is(err, leave.ErrApplicationAlreadyDecided) || errors.Is(err, leave.ErrApplicationNotFound) {
			return leave.LeaveApplicationResponse{}, err
		}
		return leave.LeaveApplicationResponse{}, fmt.Errorf("failed to update leave application: %w", err)
	}

	updated.EmployeeName = application.EmployeeName
	updated.EmployeeEmail = application.EmployeeEmail
	updated.Designation = application.Designation
	updated.Department = application.Department
	updated.PolicyName = application.PolicyName

	slog.Info("leave application decided", "application_id", id, "status", status, "decided_by", principal.UserID)
	return leave.NewLeaveApplicationResponse(updated), nil
}

// ListPending implements leave.LeaveService. Callers bound to a company only see
// applications of that company's employees.
func (l *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.LeaveApplicationResponse, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	apps, err := l.LeaveApplicationRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave: %w", err)
	}

	companyID, err := employee.CompanyIDForPrincipal(ctx, l.EmployeeRepository, principal)
	if errors.Is(err, employee.ErrCompanyNotResolved) {
		return leave.NewLeaveApplicationResponses(apps), nil
	}
	if err != nil {
		return nil, err
	}

	staff, err := l.EmployeeRepository.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list company employees: %w", err)
	}
	members := make(map[string]struct{}, len(staff))
	for _, emp := range staff {
		members[emp.ID] = struct{}{}
	}

	scoped := make([]leave.LeaveApplication, 0, len(apps))
	for _, app := range apps {
		if _, ok := members[app.EmployeeID]; ok {
			scoped = append(scoped, app)
		}
	}
	return leave.NewLeaveApplicationResponses(scoped), nil
}

// GetMyApplications implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyApplications(ctx context.Context) ([]leave.LeaveApplicationResponse, error) {
	emp, err := l.currentEmployee(ctx)
	if err != nil {
		return nil, err
	}

	apps, err := l.LeaveApplicationRepository.ListByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave applications: %w", err)
	}
	return leave.NewLeaveApplicationResponses(apps), nil
}
