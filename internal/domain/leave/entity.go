package leave

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// LeavePolicy entity
type LeavePolicy struct {
	ID               string
	Name             string
	MaxDaysPerYear   int
	CarryForward     bool
	RequiresApproval bool
	ApplicableRoles  []string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LeaveApplication entity
type LeaveApplication struct {
	ID            string
	EmployeeID    string
	LeavePolicyID string
	StartDate     time.Time
	EndDate       time.Time
	DaysCount     int
	Reason        string
	Status        Status
	ApprovedBy    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined for listings
	EmployeeName  string
	EmployeeEmail string
	Designation   string
	Department    string
	PolicyName    string
}
