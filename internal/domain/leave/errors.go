package leave

import "errors"

var (
	ErrPolicyNotFound            = errors.New("leave policy not found")
	ErrPolicyNameExists          = errors.New("leave policy with this name already exists")
	ErrApplicationNotFound       = errors.New("leave application not found")
	ErrDuplicateApplication      = errors.New("a leave application for this start date is already pending or approved")
	ErrInvalidDateRange          = errors.New("end date must not be before start date")
	ErrInsufficientBalance       = errors.New("insufficient leave balance")
	ErrApplicationAlreadyDecided = errors.New("leave application has already been processed")
)
