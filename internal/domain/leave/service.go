package leave

import (
	"context"
)

type LeaveService interface {
	// Policy management
	CreatePolicy(ctx context.Context, req CreatePolicyRequest) (LeavePolicyResponse, error)
	ListPolicies(ctx context.Context) ([]LeavePolicyResponse, error)
	UpdatePolicy(ctx context.Context, req UpdatePolicyRequest) (LeavePolicyResponse, error)

	// Application workflow
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveApplicationResponse, error)
	Approve(ctx context.Context, id string) (LeaveApplicationResponse, error)
	Reject(ctx context.Context, id string) (LeaveApplicationResponse, error)
	ListPending(ctx context.Context) ([]LeaveApplicationResponse, error)
	GetMyApplications(ctx context.Context) ([]LeaveApplicationResponse, error)

	// Balance
	RemainingBalance(ctx context.Context, employeeID string, policy LeavePolicy, year int) (int, error)
	GetMyBalances(ctx context.Context, year *int) ([]LeaveBalanceResponse, error)
}
