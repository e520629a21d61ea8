package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrBiometricNotVerified = errors.New("biometric verification failed")
	ErrOutsideGeofence      = errors.New("you are outside every allowed work location")
	ErrAlreadyCheckedIn     = errors.New("you have already checked in today")
	ErrNotCheckedIn         = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut    = errors.New("you have already checked out today")

	// Correction errors
	ErrCorrectionPending    = errors.New("an attendance request is already pending for this date")
	ErrAlreadyVerified      = errors.New("attendance for this date is already verified")
	ErrCorrectionNotAllowed = errors.New("attendance for this date can no longer be requested")
	ErrInvalidAction        = errors.New("action must be APPROVE or REJECT")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDateTaken          = errors.New("another attendance record already exists for this date")
)
