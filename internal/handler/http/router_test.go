package http

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/geo"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	leaveService "github.com/cmlabs-hris/hris-attendance-go/internal/service/leave"
	locationService "github.com/cmlabs-hris/hris-attendance-go/internal/service/location"
	payrollService "github.com/cmlabs-hris/hris-attendance-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret    = "test-secret-key-for-jwt"
	handlerTestAccessExp = "1h"
)

var handlerTestNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type testServer struct {
	router     *chi.Mux
	jwtService jwt.Service
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	employeeRepo := memory.NewEmployeeRepository(store)
	for _, e := range []employee.Employee{
		{UserID: "user-1", CompanyID: "company-1", Designation: "ENGINEER", Name: "Budi", Email: "budi@example.com"},
		{UserID: "user-2", CompanyID: "company-1", Designation: "ENGINEER", Name: "Citra", Email: "citra@example.com"},
	} {
		_, err := employeeRepo.Create(ctx, e)
		require.NoError(t, err)
	}
	return newTestServerForStore(t, store)
}

func newTestServerForStore(t *testing.T, store *memory.Store) testServer {
	t.Helper()
	now := func() time.Time { return handlerTestNow }

	tx := memory.NewTransactor(store)
	employeeRepo := memory.NewEmployeeRepository(store)
	workLocationRepo := memory.NewWorkLocationRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	policyRepo := memory.NewLeavePolicyRepository(store)
	applicationRepo := memory.NewLeaveApplicationRepository(store)
	salaryRepo := memory.NewSalaryRepository(store)

	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	handlers := Handlers{
		Attendance: NewAttendanceHandler(attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, workLocationRepo, attendanceService.Config{
			Location:   time.UTC,
			LateCutoff: attendance.DefaultCutoff,
			Now:        now,
		})),
		WorkLocation: NewWorkLocationHandler(locationService.NewWorkLocationService(workLocationRepo, employeeRepo)),
		Leave:        NewLeaveHandler(leaveService.NewLeaveService(tx, policyRepo, applicationRepo, employeeRepo, time.UTC, now)),
		Salary:       NewSalaryHandler(payrollService.NewPayrollService(tx, salaryRepo, applicationRepo, employeeRepo, time.UTC, now)),
	}

	router := NewRouter(jwtService, RouterOptions{
		AllowedOrigins: []string{"http://localhost:3000"},
		Env:            "test",
		Version:        "test",
	}, handlers)
	return testServer{router: router, jwtService: jwtService}
}

func (s testServer) token(t *testing.T, p auth.Principal) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken(p)
	require.NoError(t, err)
	return token
}

func (s testServer) hrToken(t *testing.T) string {
	return s.token(t, auth.Principal{UserID: "hr-1", Role: user.RoleHR, CompanyID: "company-1"})
}

func (s testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp))
	}
	return w, resp
}

func errorCode(resp map[string]interface{}) string {
	detail, _ := resp["error"].(map[string]interface{})
	code, _ := detail["code"].(string)
	return code
}

func errorMessage(resp map[string]interface{}) string {
	detail, _ := resp["error"].(map[string]interface{})
	msg, _ := detail["message"].(string)
	return msg
}

func northOf(p geo.Point, meters float64) map[string]interface{} {
	return map[string]interface{}{
		"latitude":           p.Latitude + (meters/geo.EarthRadiusMeters)*(180.0/math.Pi),
		"longitude":          p.Longitude,
		"biometric_verified": true,
	}
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodGet, "/api/v1/attendance/my", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(resp))

	w, _ = s.do(t, http.MethodGet, "/api/v1/attendance/my", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_PrivilegedRoutes(t *testing.T) {
	s := newTestServer(t)
	engineer := s.token(t, auth.Principal{UserID: "user-1", Role: user.RoleEngineer})

	w, resp := s.do(t, http.MethodPost, "/api/v1/attendance/locations", engineer, map[string]interface{}{
		"name": "HQ", "latitude": 12.9, "longitude": 77.6,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(resp))

	w, _ = s.do(t, http.MethodGet, "/api/v1/leave/pending", engineer, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/leave/pending", s.hrToken(t), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_CheckInFlow(t *testing.T) {
	s := newTestServer(t)
	hq := geo.Point{Latitude: 12.9, Longitude: 77.6}

	w, _ := s.do(t, http.MethodPost, "/api/v1/attendance/locations", s.hrToken(t), map[string]interface{}{
		"name": "HQ", "latitude": hq.Latitude, "longitude": hq.Longitude, "radius_in_meters": 50,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	budi := s.token(t, auth.Principal{UserID: "user-1", Role: user.RoleEngineer})
	citra := s.token(t, auth.Principal{UserID: "user-2", Role: user.RoleEngineer})

	w, resp := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", budi, northOf(hq, 40))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Checked in successfully. Status: PRESENT", resp["message"])

	w, resp = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", budi, northOf(hq, 40))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", errorCode(resp))

	w, _ = s.do(t, http.MethodPost, "/api/v1/attendance/check-in", citra, northOf(hq, 60))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", citra, northOf(hq, 0))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", budi, northOf(hq, 0))
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", budi, northOf(hq, 0))
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/attendance/company", s.hrToken(t), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)
}

func TestRouter_ValidationError(t *testing.T) {
	s := newTestServer(t)
	budi := s.token(t, auth.Principal{UserID: "user-1", Role: user.RoleEngineer})

	w, resp := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", budi, map[string]interface{}{"biometric_verified": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(resp))

	w, resp = s.do(t, http.MethodPost, "/api/v1/attendance/request/decide", s.hrToken(t), map[string]interface{}{
		"record_id": "anything", "action": "MAYBE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(resp))
}

func TestRouter_LeaveBalanceFlow(t *testing.T) {
	s := newTestServer(t)
	hr := s.hrToken(t)
	budi := s.token(t, auth.Principal{UserID: "user-1", Role: user.RoleEngineer})

	w, resp := s.do(t, http.MethodPost, "/api/v1/leave/policies", hr, map[string]interface{}{
		"name": "Annual", "max_days_per_year": 12,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	policyID := resp["data"].(map[string]interface{})["id"].(string)

	w, resp = s.do(t, http.MethodPost, "/api/v1/leave/apply", budi, map[string]interface{}{
		"leave_policy_id": policyID, "start_date": "2025-04-01", "end_date": "2025-04-05", "reason": "vacation",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	applicationID := resp["data"].(map[string]interface{})["id"].(string)

	w, _ = s.do(t, http.MethodPatch, "/api/v1/leave/"+applicationID+"/approve", hr, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodPatch, "/api/v1/leave/"+applicationID+"/reject", hr, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/leave/balance", budi, nil)
	require.Equal(t, http.StatusOK, w.Code)
	balance := resp["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(7), balance["remaining_days"])

	w, resp = s.do(t, http.MethodPost, "/api/v1/leave/apply", budi, map[string]interface{}{
		"leave_policy_id": policyID, "start_date": "2025-05-01", "end_date": "2025-05-08", "reason": "long trip",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(resp), "Remaining: 7, Requested: 8")
}

func TestRouter_PayslipPDF(t *testing.T) {
	s := newTestServer(t)
	budi := s.token(t, auth.Principal{UserID: "user-1", Role: user.RoleEngineer})

	w, _ := s.do(t, http.MethodGet, "/api/v1/salary/payslip/my/pdf", budi, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/salary", s.hrToken(t), map[string]interface{}{
		"employee_id": "user-1", "base_salary": "5000000", "allowances": map[string]string{"meal": "300000"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := s.do(t, http.MethodGet, "/api/v1/salary/payslip/my?month=3&year=2025", budi, nil)
	require.Equal(t, http.StatusOK, w.Code)
	salary := resp["data"].(map[string]interface{})["salary"].(map[string]interface{})
	assert.Equal(t, "5300000", salary["net_salary"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/salary/payslip/my/pdf", budi, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "payslip-2025-03.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w, _ = s.do(t, http.MethodGet, "/api/v1/salary/payslip/my?month=13", budi, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	s := newTestServer(t)

	w, resp := s.do(t, http.MethodGet, "/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(resp))
}

func TestRouter_SeededMemoryStore(t *testing.T) {
	store := memory.NewStore()
	_, err := memory.LoadSeed(context.Background(), store, strings.NewReader(`{
		"employees": [{
			"id": "emp-9", "user_id": "user-9", "company_id": "company-9",
			"name": "Dewi", "email": "dewi@example.com", "designation": "ENGINEER",
			"salary": {"base_salary": "4000000", "allowances": {"meal": "250000"}, "effective_from": "2025-01-01"}
		}],
		"work_locations": [{"company_id": "company-9", "name": "HQ", "latitude": 12.9, "longitude": 77.6, "radius_in_meters": 50}]
	}`))
	require.NoError(t, err)

	s := newTestServerForStore(t, store)
	dewi := s.token(t, auth.Principal{UserID: "user-9", Role: user.RoleEngineer, EmployeeID: "emp-9"})

	w, resp := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", dewi, northOf(geo.Point{Latitude: 12.9, Longitude: 77.6}, 10))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Checked in successfully. Status: PRESENT", resp["message"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/salary/my", dewi, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, resp = s.do(t, http.MethodGet, "/api/v1/salary/payslip/my?month=3&year=2025", dewi, nil)
	require.Equal(t, http.StatusOK, w.Code)
	salary := resp["data"].(map[string]interface{})["salary"].(map[string]interface{})
	assert.Equal(t, "4250000", salary["net_salary"])
}
