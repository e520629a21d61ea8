package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// ========================================
// LEAVE POLICY DTOs
// ========================================

type CreatePolicyRequest struct {
	Name             string   `json:"name"`
	MaxDaysPerYear   *int     `json:"max_days_per_year"`
	CarryForward     *bool    `json:"carry_forward,omitempty"`
	RequiresApproval *bool    `json:"requires_approval,omitempty"`
	ApplicableRoles  []string `json:"applicable_roles,omitempty"`
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if r.MaxDaysPerYear == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "max_days_per_year",
			Message: "max_days_per_year is required",
		})
	} else if *r.MaxDaysPerYear < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_days_per_year",
			Message: "max_days_per_year must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePolicyRequest patches the supplied fields; a nil ApplicableRoles keeps the current roles.
type UpdatePolicyRequest struct {
	ID               string   `json:"-"`
	Name             *string  `json:"name,omitempty"`
	MaxDaysPerYear   *int     `json:"max_days_per_year,omitempty"`
	CarryForward     *bool    `json:"carry_forward,omitempty"`
	RequiresApproval *bool    `json:"requires_approval,omitempty"`
	ApplicableRoles  []string `json:"applicable_roles,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.MaxDaysPerYear != nil && *r.MaxDaysPerYear < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_days_per_year",
			Message: "max_days_per_year must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeavePolicyResponse struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	MaxDaysPerYear   int      `json:"max_days_per_year"`
	CarryForward     bool     `json:"carry_forward"`
	RequiresApproval bool     `json:"requires_approval"`
	ApplicableRoles  []string `json:"applicable_roles"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

func NewLeavePolicyResponse(p LeavePolicy) LeavePolicyResponse {
	roles := p.ApplicableRoles
	if roles == nil {
		roles = []string{}
	}
	return LeavePolicyResponse{
		ID:               p.ID,
		Name:             p.Name,
		MaxDaysPerYear:   p.MaxDaysPerYear,
		CarryForward:     p.CarryForward,
		RequiresApproval: p.RequiresApproval,
		ApplicableRoles:  roles,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
}

// ========================================
// LEAVE APPLICATION DTOs
// ========================================

type ApplyLeaveRequest struct {
	LeavePolicyID string `json:"leave_policy_id"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Reason        string `json:"reason"`

	ParsedStartDate time.Time `json:"-"`
	ParsedEndDate   time.Time `json:"-"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeavePolicyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_policy_id",
			Message: "leave_policy_id is required",
		})
	}

	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.StartDate); ok {
		r.ParsedStartDate = d
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if d, ok := validator.IsValidDate(r.EndDate); ok {
		r.ParsedEndDate = d
	} else {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	r.Reason = strings.TrimSpace(r.Reason)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveApplicationResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	EmployeeEmail string  `json:"employee_email,omitempty"`
	Designation   string  `json:"designation,omitempty"`
	Department    string  `json:"department,omitempty"`
	LeavePolicyID string  `json:"leave_policy_id"`
	PolicyName    string  `json:"policy_name,omitempty"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	DaysCount     int     `json:"days_count"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

func NewLeaveApplicationResponse(a LeaveApplication) LeaveApplicationResponse {
	return LeaveApplicationResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeName:  a.EmployeeName,
		EmployeeEmail: a.EmployeeEmail,
		Designation:   a.Designation,
		Department:    a.Department,
		LeavePolicyID: a.LeavePolicyID,
		PolicyName:    a.PolicyName,
		StartDate:     a.StartDate.Format(validator.DateLayout),
		EndDate:       a.EndDate.Format(validator.DateLayout),
		DaysCount:     a.DaysCount,
		Reason:        a.Reason,
		Status:        string(a.Status),
		ApprovedBy:    a.ApprovedBy,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}

func NewLeaveApplicationResponses(apps []LeaveApplication) []LeaveApplicationResponse {
	out := make([]LeaveApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewLeaveApplicationResponse(a))
	}
	return out
}

type LeaveBalanceResponse struct {
	LeavePolicyID  string `json:"leave_policy_id"`
	PolicyName     string `json:"policy_name"`
	Year           int    `json:"year"`
	MaxDaysPerYear int    `json:"max_days_per_year"`
	UsedDays       int    `json:"used_days"`
	RemainingDays  int    `json:"remaining_days"`
}
