package attendance

import (
	"context"
	"time"
)

// CompanyFilter narrows company-wide listings.
type CompanyFilter struct {
	CompanyID          string
	VerificationStatus *VerificationStatus
	From               *time.Time
	To                 *time.Time
}

// AttendanceRepository defines data access methods for attendance records.
// Lookups that find nothing return ErrAttendanceNotFound.
type AttendanceRepository interface {
	// CreateIfAbsent inserts the record unless one already exists for (EmployeeID, Date).
	// created is false when an existing record won.
	CreateIfAbsent(ctx context.Context, attendance Attendance) (saved Attendance, created bool, err error)

	GetByID(ctx context.Context, id string) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// CheckOut sets the checkout fields only while they are unset.
	// Returns ErrAlreadyCheckedOut when the record was already checked out.
	CheckOut(ctx context.Context, id string, at time.Time, loc Location) (Attendance, error)

	// UpsertCorrection writes a correction record for (EmployeeID, Date), replacing an
	// existing record only when it is REJECTED. Returns ErrCorrectionNotAllowed otherwise.
	UpsertCorrection(ctx context.Context, attendance Attendance) (Attendance, error)

	UpdateVerification(ctx context.Context, id string, status VerificationStatus, verified bool) (Attendance, error)

	// Update overwrites the editable fields. Returns ErrDateTaken when the new date
	// collides with another record of the same employee.
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	// ListByEmployee returns the latest records, newest date first.
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Attendance, error)

	// ListByCompany returns records of every employee of the company with identity joined.
	ListByCompany(ctx context.Context, filter CompanyFilter) ([]Attendance, error)
}
