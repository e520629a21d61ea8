package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
)

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

type Method string

const (
	MethodBiometric Method = "BIOMETRIC"
	MethodMobile    Method = "MOBILE"
	MethodWeb       Method = "WEB"
)

type Location struct {
	Latitude  float64
	Longitude float64
}

type Attendance struct {
	ID         string
	EmployeeID string
	// Date is the calendar day at UTC midnight
	Date               time.Time
	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	CheckInLocation    *Location
	CheckOutLocation   *Location
	Status             Status
	IsVerified         bool
	VerificationStatus VerificationStatus
	Method             Method
	Reason             *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined for company listings
	EmployeeName  string
	EmployeeEmail string
	Designation   string
	Department    string
}

func (a Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}
