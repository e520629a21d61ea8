package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/google/uuid"
)

type leavePolicyRepository struct {
	s *Store
}

func NewLeavePolicyRepository(s *Store) leave.LeavePolicyRepository {
	return &leavePolicyRepository{s: s}
}

// nameTaken expects the caller to hold the store lock.
func (r *leavePolicyRepository) nameTaken(name, exceptID string) bool {
	for id, p := range r.s.policies {
		if p.Name == name && id != exceptID {
			return true
		}
	}
	return false
}

func (r *leavePolicyRepository) Create(ctx context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTaken(policy.Name, "") {
		return leave.LeavePolicy{}, leave.ErrPolicyNameExists
	}
	now := r.s.now()
	policy.ID = uuid.NewString()
	policy.CreatedAt = now
	policy.UpdatedAt = now
	r.s.policies[policy.ID] = policy
	return policy, nil
}

func (r *leavePolicyRepository) GetByID(ctx context.Context, id string) (leave.LeavePolicy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.policies[id]
	if !ok {
		return leave.LeavePolicy{}, leave.ErrPolicyNotFound
	}
	return p, nil
}

func (r *leavePolicyRepository) List(ctx context.Context) ([]leave.LeavePolicy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]leave.LeavePolicy, 0, len(r.s.policies))
	for _, p := range r.s.policies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *leavePolicyRepository) Update(ctx context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.policies[policy.ID]
	if !ok {
		return leave.LeavePolicy{}, leave.ErrPolicyNotFound
	}
	if r.nameTaken(policy.Name, policy.ID) {
		return leave.LeavePolicy{}, leave.ErrPolicyNameExists
	}
	policy.CreatedAt = current.CreatedAt
	policy.UpdatedAt = r.s.now()
	r.s.policies[policy.ID] = policy
	return policy, nil
}

type leaveApplicationRepository struct {
	s *Store
}

func NewLeaveApplicationRepository(s *Store) leave.LeaveApplicationRepository {
	return &leaveApplicationRepository{s: s}
}

func isActive(status leave.Status) bool {
	return status == leave.StatusPending || status == leave.StatusApproved
}

// withJoins fills identity and policy fields; the caller holds the store lock.
func (r *leaveApplicationRepository) withJoins(a leave.LeaveApplication) leave.LeaveApplication {
	if emp, ok := r.s.employees[a.EmployeeID]; ok {
		a.EmployeeName = emp.Name
		a.EmployeeEmail = emp.Email
		a.Designation = emp.Designation
		a.Department = emp.Department
	}
	if p, ok := r.s.policies[a.LeavePolicyID]; ok {
		a.PolicyName = p.Name
	}
	return a
}

func (r *leaveApplicationRepository) Create(ctx context.Context, application leave.LeaveApplication) (leave.LeaveApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.applications {
		if a.EmployeeID == application.EmployeeID && a.StartDate.Equal(application.StartDate) && isActive(a.Status) {
			return leave.LeaveApplication{}, leave.ErrDuplicateApplication
		}
	}

	now := r.s.now()
	application.ID = uuid.NewString()
	application.CreatedAt = now
	application.UpdatedAt = now
	r.s.applications[application.ID] = application
	return application, nil
}

func (r *leaveApplicationRepository) GetByID(ctx context.Context, id string) (leave.LeaveApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.applications[id]
	if !ok {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	return r.withJoins(a), nil
}

func (r *leaveApplicationRepository) ExistsActiveByStartDate(ctx context.Context, employeeID string, startDate time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.applications {
		if a.EmployeeID == employeeID && a.StartDate.Equal(startDate) && isActive(a.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (r *leaveApplicationRepository) SumApprovedDays(ctx context.Context, employeeID, policyID string, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	total := 0
	for _, a := range r.s.applications {
		if a.EmployeeID != employeeID || a.LeavePolicyID != policyID || a.Status != leave.StatusApproved {
			continue
		}
		if a.StartDate.Before(from) || a.StartDate.After(to) {
			continue
		}
		total += a.DaysCount
	}
	return total, nil
}

func (r *leaveApplicationRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []leave.LeaveApplication{}
	for _, a := range r.s.applications {
		if a.EmployeeID == employeeID && a.Status == leave.StatusApproved && !a.StartDate.After(to) && !a.EndDate.Before(from) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *leaveApplicationRepository) ListPending(ctx context.Context) ([]leave.LeaveApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []leave.LeaveApplication{}
	for _, a := range r.s.applications {
		if a.Status == leave.StatusPending {
			out = append(out, r.withJoins(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *leaveApplicationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveApplication, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []leave.LeaveApplication{}
	for _, a := range r.s.applications {
		if a.EmployeeID == employeeID {
			out = append(out, r.withJoins(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *leaveApplicationRepository) UpdateStatus(ctx context.Context, id string, status leave.Status, approvedBy string) (leave.LeaveApplication, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.applications[id]
	if !ok {
		return leave.LeaveApplication{}, leave.ErrApplicationNotFound
	}
	if a.Status != leave.StatusPending {
		return leave.LeaveApplication{}, leave.ErrApplicationAlreadyDecided
	}
	a.Status = status
	a.ApprovedBy = &approvedBy
	a.UpdatedAt = r.s.now()
	r.s.applications[id] = a
	return r.withJoins(a), nil
}
