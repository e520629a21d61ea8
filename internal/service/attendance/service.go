package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/geo"
)

// Config carries the attendance policy knobs.
type Config struct {
	// Location defines the calendar day and the wall clock of the late cutoff
	Location     *time.Location
	LateCutoff   attendance.Cutoff
	HistoryLimit int
	// Now defaults to time.Now
	Now func() time.Time
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	location.WorkLocationRepository
	cfg Config
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	workLocationRepo location.WorkLocationRepository,
	cfg Config,
) attendance.AttendanceService {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 30
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		EmployeeRepository:     employeeRepo,
		WorkLocationRepository: workLocationRepo,
		cfg:                    cfg,
	}
}

func (a *AttendanceServiceImpl) currentEmployee(ctx context.Context) (employee.Employee, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	return employee.ForPrincipal(ctx, a.EmployeeRepository, principal)
}

// visibleRecord loads a record the caller's company owns. Records of other
// companies read as missing.
func (a *AttendanceServiceImpl) visibleRecord(ctx context.Context, id string) (attendance.Attendance, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	ok, err := employee.SameCompany(ctx, a.EmployeeRepository, principal, record.EmployeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

func (a *AttendanceServiceImpl) currentCompanyID(ctx context.Context) (string, error) {
	principal, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return "", err
	}
	return employee.CompanyIDForPrincipal(ctx, a.EmployeeRepository, principal)
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !req.BiometricVerified {
		return attendance.AttendanceResponse{}, attendance.ErrBiometricNotVerified
	}

	locations, err := a.WorkLocationRepository.ListActiveByCompanyID(ctx, emp.CompanyID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to list work locations: %w", err)
	}

	point := geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}
	inside, err := geo.IsWithinAnyZone(point, location.Zones(locations))
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !inside {
		return attendance.AttendanceResponse{}, attendance.ErrOutsideGeofence
	}

	now := a.cfg.Now().UTC()
	day := attendance.DayOf(now, a.cfg.Location)

	record, created, err := a.AttendanceRepository.CreateIfAbsent(ctx, attendance.Attendance{
		EmployeeID:         emp.ID,
		Date:               day,
		CheckInTime:        &now,
		CheckInLocation:    &attendance.Location{Latitude: point.Latitude, Longitude: point.Longitude},
		Status:             attendance.DeriveStatus(now, day, a.cfg.LateCutoff, a.cfg.Location),
		IsVerified:         true,
		VerificationStatus: attendance.VerificationApproved,
		Method:             attendance.MethodBiometric,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	if !created {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	slog.Info("employee checked in", "employee_id", emp.ID, "date", day.Format("2006-01-02"), "status", record.Status)
	return attendance.NewAttendanceResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.cfg.Now().UTC()
	day := attendance.DayOf(now, a.cfg.Location)

	record, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, day)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record.CheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	updated, err := a.AttendanceRepository.CheckOut(ctx, record.ID, now, attendance.Location{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check out: %w", err)
	}

	return attendance.NewAttendanceResponse(updated), nil
}

// RequestCorrection implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RequestCorrection(ctx context.Context, req attendance.CorrectionRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.currentEmployee(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.cfg.Now().UTC()
	day := attendance.DayOf(now, a.cfg.Location)
	if req.ParsedDate != nil {
		day = *req.ParsedDate
	}
	checkIn := now
	if req.ParsedCheckInTime != nil {
		checkIn = req.ParsedCheckInTime.UTC()
	}
	var checkOut *time.Time
	if req.ParsedCheckOutTime != nil {
		t := req.ParsedCheckOutTime.UTC()
		checkOut = &t
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, day)
	switch {
	case err == nil && existing.VerificationStatus == attendance.VerificationPending:
		return attendance.AttendanceResponse{}, attendance.ErrCorrectionPending
	case err == nil && existing.VerificationStatus == attendance.VerificationApproved:
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyVerified
	case err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	reason := req.Reason
	record, err := a.AttendanceRepository.UpsertCorrection(ctx, attendance.Attendance{
		EmployeeID:         emp.ID,
		Date:               day,
		CheckInTime:        &checkIn,
		CheckOutTime:       checkOut,
		Status:             attendance.DeriveStatus(checkIn, day, a.cfg.LateCutoff, a.cfg.Location),
		IsVerified:         false,
		VerificationStatus: attendance.VerificationPending,
		Method:             attendance.MethodWeb,
		Reason:             &reason,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrCorrectionNotAllowed) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save attendance request: %w", err)
	}

	return attendance.NewAttendanceResponse(record), nil
}

// DecideCorrection implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DecideCorrection(ctx context.Context, req attendance.DecideCorrectionRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var (
		status   attendance.VerificationStatus
		verified bool
	)
	switch strings.ToUpper(strings.TrimSpace(req.Action)) {
	case attendance.ActionApprove:
		status, verified = attendance.VerificationApproved, true
	case attendance.ActionReject:
		status, verified = attendance.VerificationRejected, false
	default:
		return attendance.AttendanceResponse{}, attendance.ErrInvalidAction
	}

	if _, err := a.visibleRecord(ctx, req.RecordID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.UpdateVerification(ctx, req.RecordID, status, verified)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to decide attendance request: %w", err)
	}

	return attendance.NewAttendanceResponse(record), nil
}

// AdminEdit implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) AdminEdit(ctx context.Context, req attendance.AdminEditRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.visibleRecord(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.ParsedDate != nil {
		record.Date = *req.ParsedDate
	}
	if req.ParsedCheckInTime != nil {
		t := req.ParsedCheckInTime.UTC()
		record.CheckInTime = &t
	}
	if req.ParsedCheckOutTime != nil {
		t := req.ParsedCheckOutTime.UTC()
		record.CheckOutTime = &t
	}
	if req.Status != nil {
		record.Status = attendance.Status(strings.ToUpper(strings.TrimSpace(*req.Status)))
	}
	record.IsVerified = true
	record.VerificationStatus = attendance.VerificationApproved

	updated, err := a.AttendanceRepository.Update(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDateTaken) || errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return attendance.NewAttendanceResponse(updated), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	emp, err := a.currentEmployee(ctx)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, emp.ID, a.cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, id string) ([]attendance.AttendanceResponse, error) {
	emp, err := employee.Lookup(ctx, a.EmployeeRepository, id)
	if err != nil {
		return nil, err
	}

	// Callers bound to a company only see their own company's employees.
	companyID, err := a.currentCompanyID(ctx)
	switch {
	case err == nil && companyID != emp.CompanyID:
		return nil, employee.ErrEmployeeNotFound
	case err != nil && !errors.Is(err, employee.ErrCompanyNotResolved):
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByEmployee(ctx, emp.ID, a.cfg.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// ListCompanyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListCompanyAttendance(ctx context.Context, query attendance.CompanyAttendanceQuery) ([]attendance.AttendanceResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	companyID, err := a.currentCompanyID(ctx)
	if err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.ListByCompany(ctx, query.Filter(companyID))
	if err != nil {
		return nil, fmt.Errorf("failed to list company attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// ListPendingCorrections implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListPendingCorrections(ctx context.Context) ([]attendance.AttendanceResponse, error) {
	return a.ListCompanyAttendance(ctx, attendance.CompanyAttendanceQuery{
		VerificationStatus: string(attendance.VerificationPending),
	})
}
