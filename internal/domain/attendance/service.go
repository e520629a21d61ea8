package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records today's geofenced, biometric check-in for the caller
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's record for the caller
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// RequestCorrection files a manual attendance entry awaiting approval
	RequestCorrection(ctx context.Context, req CorrectionRequest) (AttendanceResponse, error)

	// DecideCorrection approves or rejects an attendance record
	DecideCorrection(ctx context.Context, req DecideCorrectionRequest) (AttendanceResponse, error)

	// AdminEdit overwrites a record and marks it verified
	AdminEdit(ctx context.Context, req AdminEditRequest) (AttendanceResponse, error)

	GetMyAttendance(ctx context.Context) ([]AttendanceResponse, error)

	// GetEmployeeAttendance accepts either an employee id or a user id
	GetEmployeeAttendance(ctx context.Context, id string) ([]AttendanceResponse, error)

	ListCompanyAttendance(ctx context.Context, query CompanyAttendanceQuery) ([]AttendanceResponse, error)
	ListPendingCorrections(ctx context.Context) ([]AttendanceResponse, error)
}
