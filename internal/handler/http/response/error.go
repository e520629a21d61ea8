package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingClaim):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrRoleRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrNotAnEmployee):
		Forbidden(w, "Only employees can perform this action")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrCompanyNotResolved):
		Forbidden(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrBiometricNotVerified),
		errors.Is(err, attendance.ErrOutsideGeofence):
		Forbidden(w, err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, attendance.ErrNotCheckedIn):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrCorrectionPending),
		errors.Is(err, attendance.ErrAlreadyVerified),
		errors.Is(err, attendance.ErrCorrectionNotAllowed),
		errors.Is(err, attendance.ErrDateTaken):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidAction),
		errors.Is(err, geo.ErrInvalidCoordinates):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrPolicyNotFound),
		errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrPolicyNameExists),
		errors.Is(err, leave.ErrDuplicateApplication):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrInsufficientBalance),
		errors.Is(err, leave.ErrApplicationAlreadyDecided):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSalaryNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
