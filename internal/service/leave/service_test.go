package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

type fixture struct {
	svc      leave.LeaveService
	employee employee.Employee
	policy   leave.LeavePolicyResponse
}

func withPrincipal(t *testing.T, p auth.Principal) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(p.Claims())
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newFixture(t *testing.T, maxDays int) fixture {
	t.Helper()
	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)

	emp, err := employees.Create(context.Background(), employee.Employee{
		UserID:      "user-1",
		CompanyID:   "company-1",
		Designation: "ENGINEER",
		Department:  "Platform",
		Name:        "Budi",
		Email:       "budi@example.com",
	})
	require.NoError(t, err)

	svc := NewLeaveService(
		memory.NewTransactor(store),
		memory.NewLeavePolicyRepository(store),
		memory.NewLeaveApplicationRepository(store),
		employees,
		time.UTC,
		func() time.Time { return fixedNow },
	)

	policy, err := svc.CreatePolicy(hrContext(t), leave.CreatePolicyRequest{Name: "Annual", MaxDaysPerYear: &maxDays})
	require.NoError(t, err)

	return fixture{svc: svc, employee: emp, policy: policy}
}

func hrContext(t *testing.T) context.Context {
	return withPrincipal(t, auth.Principal{UserID: "hr-1", Role: user.RoleHR, Name: "Ayu"})
}

func employeeContext(t *testing.T) context.Context {
	return withPrincipal(t, auth.Principal{UserID: "user-1", Role: user.RoleEngineer, Name: "Budi"})
}

func applyReq(policyID, start, end string) leave.ApplyLeaveRequest {
	return leave.ApplyLeaveRequest{LeavePolicyID: policyID, StartDate: start, EndDate: end, Reason: "family trip"}
}

func TestCreatePolicy_Defaults(t *testing.T) {
	f := newFixture(t, 12)

	assert.Equal(t, "Annual", f.policy.Name)
	assert.Equal(t, 12, f.policy.MaxDaysPerYear)
	assert.False(t, f.policy.CarryForward)
	assert.True(t, f.policy.RequiresApproval)
	assert.Equal(t, []string{}, f.policy.ApplicableRoles)

	limit := 5
	_, err := f.svc.CreatePolicy(hrContext(t), leave.CreatePolicyRequest{Name: "Annual", MaxDaysPerYear: &limit})
	assert.ErrorIs(t, err, leave.ErrPolicyNameExists)

	_, err = f.svc.CreatePolicy(hrContext(t), leave.CreatePolicyRequest{Name: " "})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestUpdatePolicy_MergesSuppliedFields(t *testing.T) {
	f := newFixture(t, 12)
	maxDays := 15
	carry := true

	updated, err := f.svc.UpdatePolicy(hrContext(t), leave.UpdatePolicyRequest{ID: f.policy.ID, MaxDaysPerYear: &maxDays, CarryForward: &carry})
	require.NoError(t, err)
	assert.Equal(t, "Annual", updated.Name)
	assert.Equal(t, 15, updated.MaxDaysPerYear)
	assert.True(t, updated.CarryForward)
	assert.True(t, updated.RequiresApproval)

	_, err = f.svc.UpdatePolicy(hrContext(t), leave.UpdatePolicyRequest{ID: "missing", MaxDaysPerYear: &maxDays})
	assert.ErrorIs(t, err, leave.ErrPolicyNotFound)
}

func TestApply_BalanceScenario(t *testing.T) {
	f := newFixture(t, 12)
	ctx := employeeContext(t)

	first, err := f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-07-01", "2025-07-05"))
	require.NoError(t, err)
	assert.Equal(t, 5, first.DaysCount)
	assert.Equal(t, string(leave.StatusPending), first.Status)
	assert.Equal(t, "Annual", first.PolicyName)

	approved, err := f.svc.Approve(hrContext(t), first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "hr-1", *approved.ApprovedBy)

	balances, err := f.svc.GetMyBalances(ctx, nil)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, 2025, balances[0].Year)
	assert.Equal(t, 5, balances[0].UsedDays)
	assert.Equal(t, 7, balances[0].RemainingDays)

	_, err = f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-08-01", "2025-08-08"))
	require.ErrorIs(t, err, leave.ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "Remaining: 7, Requested: 8")

	_, err = f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-08-01", "2025-08-07"))
	assert.NoError(t, err)
}

func TestApply_PendingDoesNotConsumeBalance(t *testing.T) {
	f := newFixture(t, 3)
	ctx := employeeContext(t)

	_, err := f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-07-01", "2025-07-03"))
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-07-10", "2025-07-12"))
	assert.NoError(t, err)
}

func TestApply_Rejections(t *testing.T) {
	f := newFixture(t, 12)
	ctx := employeeContext(t)

	_, err := f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-07-05", "2025-07-01"))
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	_, err = f.svc.Apply(ctx, applyReq("missing", "2025-07-01", "2025-07-02"))
	assert.ErrorIs(t, err, leave.ErrPolicyNotFound)

	_, err = f.svc.Apply(ctx, leave.ApplyLeaveRequest{LeavePolicyID: f.policy.ID})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.Apply(hrContext(t), applyReq(f.policy.ID, "2025-07-01", "2025-07-02"))
	assert.ErrorIs(t, err, employee.ErrNotAnEmployee)

	_, err = f.svc.Apply(context.Background(), applyReq(f.policy.ID, "2025-07-01", "2025-07-02"))
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestApply_DuplicateStartDate(t *testing.T) {
	f := newFixture(t, 12)
	ctx := employeeContext(t)

	first, err := f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-07-01", "2025-07-02"))
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-07-01", "2025-07-03"))
	assert.ErrorIs(t, err, leave.ErrDuplicateApplication)

	_, err = f.svc.Reject(hrContext(t), first.ID)
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-07-01", "2025-07-03"))
	assert.NoError(t, err)
}

func TestDecide_OnlyPending(t *testing.T) {
	f := newFixture(t, 12)

	app, err := f.svc.Apply(employeeContext(t), applyReq(f.policy.ID, "2025-07-01", "2025-07-02"))
	require.NoError(t, err)

	rejected, err := f.svc.Reject(hrContext(t), app.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), rejected.Status)
	assert.Equal(t, "Budi", rejected.EmployeeName)

	_, err = f.svc.Approve(hrContext(t), app.ID)
	require.ErrorIs(t, err, leave.ErrApplicationAlreadyDecided)
	assert.Contains(t, err.Error(), "already REJECTED")

	_, err = f.svc.Approve(hrContext(t), "missing")
	assert.ErrorIs(t, err, leave.ErrApplicationNotFound)
}

func TestListPendingAndMine(t *testing.T) {
	f := newFixture(t, 12)
	ctx := employeeContext(t)

	a, err := f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-07-01", "2025-07-02"))
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-09-01", "2025-09-01"))
	require.NoError(t, err)
	_, err = f.svc.Approve(hrContext(t), a.ID)
	require.NoError(t, err)

	pending, err := f.svc.ListPending(hrContext(t))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "2025-09-01", pending[0].StartDate)
	assert.Equal(t, "Budi", pending[0].EmployeeName)
	assert.Equal(t, "Annual", pending[0].PolicyName)

	mine, err := f.svc.GetMyApplications(ctx)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestGetMyBalances_OtherYearIsFull(t *testing.T) {
	f := newFixture(t, 12)
	ctx := employeeContext(t)

	app, err := f.svc.Apply(ctx, applyReq(f.policy.ID, "2025-07-01", "2025-07-04"))
	require.NoError(t, err)
	_, err = f.svc.Approve(hrContext(t), app.ID)
	require.NoError(t, err)

	year := 2024
	balances, err := f.svc.GetMyBalances(ctx, &year)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, 12, balances[0].RemainingDays)
	assert.Equal(t, 0, balances[0].UsedDays)
}

func TestPendingQueueAndDecisions_ScopedToCallerCompany(t *testing.T) {
	f := newFixture(t, 12)

	app, err := f.svc.Apply(employeeContext(t), applyReq(f.policy.ID, "2025-07-01", "2025-07-02"))
	require.NoError(t, err)

	other := withPrincipal(t, auth.Principal{UserID: "hr-2", Role: user.RoleHR, CompanyID: "company-2"})
	pending, err := f.svc.ListPending(other)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = f.svc.Approve(other, app.ID)
	assert.ErrorIs(t, err, leave.ErrApplicationNotFound)
	_, err = f.svc.Reject(other, app.ID)
	assert.ErrorIs(t, err, leave.ErrApplicationNotFound)

	own := withPrincipal(t, auth.Principal{UserID: "hr-1", Role: user.RoleHR, CompanyID: "company-1"})
	pending, err = f.svc.ListPending(own)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := f.svc.Approve(own, app.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
}
