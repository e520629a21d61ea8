package attendance

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hq = geo.Point{Latitude: 12.9, Longitude: 77.6}

func northOf(p geo.Point, meters float64) (*float64, *float64) {
	lat := p.Latitude + (meters/geo.EarthRadiusMeters)*(180.0/math.Pi)
	lng := p.Longitude
	return &lat, &lng
}

func withPrincipal(t *testing.T, p auth.Principal) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(p.Claims())
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type fixture struct {
	svc      attendance.AttendanceService
	repo     attendance.AttendanceRepository
	employee employee.Employee
	now      *time.Time
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	locations := memory.NewWorkLocationRepository(store)
	records := memory.NewAttendanceRepository(store)

	emp, err := employees.Create(ctx, employee.Employee{
		UserID:      "user-1",
		CompanyID:   "company-1",
		Designation: "ENGINEER",
		Name:        "Budi",
		Email:       "budi@example.com",
	})
	require.NoError(t, err)

	_, err = locations.Upsert(ctx, location.WorkLocation{
		CompanyID:      "company-1",
		Name:           "HQ",
		Latitude:       hq.Latitude,
		Longitude:      hq.Longitude,
		RadiusInMeters: 50,
		IsActive:       true,
	})
	require.NoError(t, err)

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := NewAttendanceService(records, employees, locations, Config{
		Location:   time.UTC,
		LateCutoff: attendance.DefaultCutoff,
		Now:        func() time.Time { return now },
	})
	return fixture{svc: svc, repo: records, employee: emp, now: &now}
}

func employeeContext(t *testing.T) context.Context {
	return withPrincipal(t, auth.Principal{UserID: "user-1", Role: user.RoleEngineer})
}

func hrContext(t *testing.T) context.Context {
	return withPrincipal(t, auth.Principal{UserID: "hr-1", Role: user.RoleHR, CompanyID: "company-1"})
}

func checkIn(meters float64) attendance.CheckInRequest {
	lat, lng := northOf(hq, meters)
	return attendance.CheckInRequest{Latitude: lat, Longitude: lng, BiometricVerified: true}
}

func TestCheckIn_InsideGeofence(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.CheckIn(employeeContext(t), checkIn(40))
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, string(attendance.VerificationApproved), resp.VerificationStatus)
	assert.Equal(t, string(attendance.MethodBiometric), resp.Method)
	assert.True(t, resp.IsVerified)
	require.NotNil(t, resp.CheckInLocation)
}

func TestCheckIn_LateAfterCutoff(t *testing.T) {
	f := newFixture(t)
	*f.now = time.Date(2025, 3, 10, 9, 31, 0, 0, time.UTC)

	resp, err := f.svc.CheckIn(employeeContext(t), checkIn(10))
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestCheckIn_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := employeeContext(t)

	_, err := f.svc.CheckIn(ctx, checkIn(60))
	assert.ErrorIs(t, err, attendance.ErrOutsideGeofence)

	req := checkIn(10)
	req.BiometricVerified = false
	_, err = f.svc.CheckIn(ctx, req)
	assert.ErrorIs(t, err, attendance.ErrBiometricNotVerified)

	_, err = f.svc.CheckIn(ctx, attendance.CheckInRequest{BiometricVerified: true})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.CheckIn(hrContext(t), checkIn(10))
	assert.ErrorIs(t, err, employee.ErrNotAnEmployee)

	records, err := f.repo.ListByEmployee(context.Background(), f.employee.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCheckIn_OncePerDay(t *testing.T) {
	f := newFixture(t)
	ctx := employeeContext(t)

	_, err := f.svc.CheckIn(ctx, checkIn(10))
	require.NoError(t, err)

	_, err = f.svc.CheckIn(ctx, checkIn(10))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	*f.now = f.now.AddDate(0, 0, 1)
	_, err = f.svc.CheckIn(ctx, checkIn(10))
	assert.NoError(t, err)
}

func TestCheckOut(t *testing.T) {
	f := newFixture(t)
	ctx := employeeContext(t)
	lat, lng := northOf(hq, 500)

	_, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: lat, Longitude: lng})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)

	_, err = f.svc.CheckIn(ctx, checkIn(10))
	require.NoError(t, err)

	*f.now = f.now.Add(8 * time.Hour)
	resp, err := f.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: lat, Longitude: lng})
	require.NoError(t, err)
	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, "2025-03-10T17:00:00Z", *resp.CheckOutTime)
	require.NotNil(t, resp.CheckOutLocation)
	assert.InDelta(t, *lat, resp.CheckOutLocation.Latitude, 1e-9)

	_, err = f.svc.CheckOut(ctx, attendance.CheckOutRequest{Latitude: lat, Longitude: lng})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestCorrectionLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := employeeContext(t)
	date := "2025-03-07"
	in := "2025-03-07T09:45:00Z"
	out := "2025-03-07T17:00:00Z"

	pending, err := f.svc.RequestCorrection(ctx, attendance.CorrectionRequest{
		Date: &date, CheckInTime: &in, CheckOutTime: &out, Reason: "forgot to check in",
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.VerificationPending), pending.VerificationStatus)
	assert.Equal(t, string(attendance.MethodWeb), pending.Method)
	assert.Equal(t, string(attendance.StatusLate), pending.Status)
	assert.False(t, pending.IsVerified)

	_, err = f.svc.RequestCorrection(ctx, attendance.CorrectionRequest{Date: &date, Reason: "again"})
	assert.ErrorIs(t, err, attendance.ErrCorrectionPending)

	queue, err := f.svc.ListPendingCorrections(hrContext(t))
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, "Budi", queue[0].EmployeeName)

	rejected, err := f.svc.DecideCorrection(hrContext(t), attendance.DecideCorrectionRequest{RecordID: pending.ID, Action: "reject"})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.VerificationRejected), rejected.VerificationStatus)

	resubmitted, err := f.svc.RequestCorrection(ctx, attendance.CorrectionRequest{Date: &date, CheckInTime: &in, Reason: "with proof"})
	require.NoError(t, err)
	assert.Equal(t, pending.ID, resubmitted.ID)
	assert.Equal(t, string(attendance.VerificationPending), resubmitted.VerificationStatus)

	approved, err := f.svc.DecideCorrection(hrContext(t), attendance.DecideCorrectionRequest{RecordID: pending.ID, Action: attendance.ActionApprove})
	require.NoError(t, err)
	assert.True(t, approved.IsVerified)

	_, err = f.svc.RequestCorrection(ctx, attendance.CorrectionRequest{Date: &date, Reason: "one more"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyVerified)

	queue, err = f.svc.ListPendingCorrections(hrContext(t))
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestRequestCorrection_AfterBiometricCheckIn(t *testing.T) {
	f := newFixture(t)
	ctx := employeeContext(t)

	_, err := f.svc.CheckIn(ctx, checkIn(10))
	require.NoError(t, err)

	_, err = f.svc.RequestCorrection(ctx, attendance.CorrectionRequest{Reason: "wrong time"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyVerified)
}

func TestDecideCorrection_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.DecideCorrection(hrContext(t), attendance.DecideCorrectionRequest{RecordID: "any", Action: "MAYBE"})
	assert.ErrorIs(t, err, attendance.ErrInvalidAction)

	_, err = f.svc.DecideCorrection(hrContext(t), attendance.DecideCorrectionRequest{RecordID: "missing", Action: attendance.ActionApprove})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAdminEdit(t *testing.T) {
	f := newFixture(t)
	ctx := employeeContext(t)

	first, err := f.svc.CheckIn(ctx, checkIn(10))
	require.NoError(t, err)
	*f.now = f.now.AddDate(0, 0, 1)
	second, err := f.svc.CheckIn(ctx, checkIn(10))
	require.NoError(t, err)

	status := "late"
	edited, err := f.svc.AdminEdit(hrContext(t), attendance.AdminEditRequest{ID: first.ID, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), edited.Status)
	assert.Equal(t, first.Date, edited.Date)

	taken := second.Date
	_, err = f.svc.AdminEdit(hrContext(t), attendance.AdminEditRequest{ID: first.ID, Date: &taken})
	assert.ErrorIs(t, err, attendance.ErrDateTaken)

	_, err = f.svc.AdminEdit(hrContext(t), attendance.AdminEditRequest{ID: "missing", Status: &status})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestHistoryAndCompanyListing(t *testing.T) {
	f := newFixture(t)
	ctx := employeeContext(t)

	for i := 0; i < 3; i++ {
		_, err := f.svc.CheckIn(ctx, checkIn(10))
		require.NoError(t, err)
		*f.now = f.now.AddDate(0, 0, 1)
	}

	mine, err := f.svc.GetMyAttendance(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, "2025-03-12", mine[0].Date)

	history, err := f.svc.GetEmployeeAttendance(hrContext(t), f.employee.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3)

	other := withPrincipal(t, auth.Principal{UserID: "hr-2", Role: user.RoleHR, CompanyID: "company-2"})
	_, err = f.svc.GetEmployeeAttendance(other, f.employee.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	listed, err := f.svc.ListCompanyAttendance(hrContext(t), attendance.CompanyAttendanceQuery{StartDate: "2025-03-11"})
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	_, err = f.svc.ListCompanyAttendance(hrContext(t), attendance.CompanyAttendanceQuery{VerificationStatus: "MAYBE"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestDecisions_ScopedToCallerCompany(t *testing.T) {
	f := newFixture(t)

	record, err := f.svc.CheckIn(employeeContext(t), checkIn(10))
	require.NoError(t, err)

	other := withPrincipal(t, auth.Principal{UserID: "hr-2", Role: user.RoleHR, CompanyID: "company-2"})
	status := "ABSENT"

	_, err = f.svc.DecideCorrection(other, attendance.DecideCorrectionRequest{RecordID: record.ID, Action: attendance.ActionReject})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	_, err = f.svc.AdminEdit(other, attendance.AdminEditRequest{ID: record.ID, Status: &status})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	stored, err := f.repo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, stored.Status)
	assert.Equal(t, attendance.VerificationApproved, stored.VerificationStatus)

	// a platform admin without a company is not scoped
	admin := withPrincipal(t, auth.Principal{UserID: "admin-1", Role: user.RoleAdmin})
	edited, err := f.svc.AdminEdit(admin, attendance.AdminEditRequest{ID: record.ID, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "ABSENT", edited.Status)
}
