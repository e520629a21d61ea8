package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetEmployeeAttendance(w http.ResponseWriter, r *http.Request)
	ListCompany(w http.ResponseWriter, r *http.Request)
	RequestCorrection(w http.ResponseWriter, r *http.Request)
	ListPendingCorrections(w http.ResponseWriter, r *http.Request)
	DecideCorrection(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Checked in successfully. Status: %s", result.Status), result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", result)
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetMyAttendance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance history fetched successfully", result)
}

// GetEmployeeAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetEmployeeAttendance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.attendanceService.GetEmployeeAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee attendance fetched successfully", result)
}

// ListCompany implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListCompany(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := attendance.CompanyAttendanceQuery{
		VerificationStatus: strings.ToUpper(q.Get("verification_status")),
		StartDate:          q.Get("start_date"),
		EndDate:            q.Get("end_date"),
	}

	result, err := h.attendanceService.ListCompanyAttendance(r.Context(), query)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "All company attendance fetched successfully", result)
}

// RequestCorrection implements AttendanceHandler.
func (h *attendanceHandlerImpl) RequestCorrection(w http.ResponseWriter, r *http.Request) {
	var req attendance.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RequestCorrection decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RequestCorrection(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance request submitted for approval", result)
}

// ListPendingCorrections implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListPendingCorrections(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListPendingCorrections(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DecideCorrection implements AttendanceHandler.
func (h *attendanceHandlerImpl) DecideCorrection(w http.ResponseWriter, r *http.Request) {
	var req attendance.DecideCorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideCorrection decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.DecideCorrection(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Attendance request rejected"
	if result.IsVerified {
		message = "Attendance request approved"
	}
	response.SuccessWithMessage(w, message, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.AdminEditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update attendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.AdminEdit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}
