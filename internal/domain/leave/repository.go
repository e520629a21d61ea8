package leave

import (
	"context"
	"time"
)

// LeavePolicyRepository - interface for leave_policies table
type LeavePolicyRepository interface {
	Create(ctx context.Context, policy LeavePolicy) (LeavePolicy, error)
	GetByID(ctx context.Context, id string) (LeavePolicy, error)
	List(ctx context.Context) ([]LeavePolicy, error)
	Update(ctx context.Context, policy LeavePolicy) (LeavePolicy, error)
}

// LeaveApplicationRepository - interface for leave_applications table
type LeaveApplicationRepository interface {
	// Create returns ErrDuplicateApplication when an active application shares the start date
	Create(ctx context.Context, application LeaveApplication) (LeaveApplication, error)
	GetByID(ctx context.Context, id string) (LeaveApplication, error)
	ExistsActiveByStartDate(ctx context.Context, employeeID string, startDate time.Time) (bool, error)

	// SumApprovedDays sums days_count of APPROVED applications whose start date is in [from, to]
	SumApprovedDays(ctx context.Context, employeeID, policyID string, from, to time.Time) (int, error)

	// ListApprovedOverlapping returns APPROVED applications with start <= to and end >= from
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveApplication, error)

	ListPending(ctx context.Context) ([]LeaveApplication, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveApplication, error)

	// UpdateStatus decides a PENDING application. Returns ErrApplicationAlreadyDecided otherwise.
	UpdateStatus(ctx context.Context, id string, status Status, approvedBy string) (LeaveApplication, error)
}
