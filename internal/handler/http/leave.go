package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreatePolicy(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)
	UpdatePolicy(w http.ResponseWriter, r *http.Request)

	Apply(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	GetMyApplications(w http.ResponseWriter, r *http.Request)
	GetMyBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

// ========== POLICIES ==========

// CreatePolicy implements LeaveHandler.
func (l *LeaveHandlerImpl) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req leave.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	policy, err := l.leaveService.CreatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave Policy created successfully", policy)
}

// ListPolicies implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := l.leaveService.ListPolicies(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave Policies fetched successfully", policies)
}

// UpdatePolicy implements LeaveHandler.
func (l *LeaveHandlerImpl) UpdatePolicy(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	policy, err := l.leaveService.UpdatePolicy(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave Policy updated successfully", policy)
}

// ========== APPLICATIONS ==========

// Apply implements LeaveHandler.
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Apply leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	application, err := l.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted successfully", application)
}

// ListPending implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := l.leaveService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pending leaves fetched successfully", pending)
}

// Approve implements LeaveHandler.
func (l *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	application, err := l.leaveService.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave approved successfully", application)
}

// Reject implements LeaveHandler.
func (l *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	application, err := l.leaveService.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave rejected successfully", application)
}

// GetMyApplications implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := l.leaveService.GetMyApplications(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "My leave history fetched successfully", applications)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	var year *int
	if raw := r.URL.Query().Get("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid year parameter", nil)
			return
		}
		year = &y
	}

	balances, err := l.leaveService.GetMyBalances(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}
