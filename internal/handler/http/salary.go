package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	Upsert(w http.ResponseWriter, r *http.Request)
	GetEmployeeSalary(w http.ResponseWriter, r *http.Request)
	GetMySalary(w http.ResponseWriter, r *http.Request)
	GetMyPayslip(w http.ResponseWriter, r *http.Request)
	GetMyPayslipPDF(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewSalaryHandler(payrollService payroll.PayrollService) SalaryHandler {
	return &salaryHandlerImpl{payrollService: payrollService}
}

func (h *salaryHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpsertSalary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.UpsertSalary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure saved successfully", result)
}

func (h *salaryHandlerImpl) GetEmployeeSalary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.payrollService.GetEmployeeSalary(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary structure fetched successfully", result)
}

func (h *salaryHandlerImpl) GetMySalary(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetMySalary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "My salary structure fetched successfully", result)
}

func (h *salaryHandlerImpl) GetMyPayslip(w http.ResponseWriter, r *http.Request) {
	req, ok := parsePayslipRequest(w, r)
	if !ok {
		return
	}

	result, err := h.payrollService.BuildPayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip generated successfully", result)
}

func (h *salaryHandlerImpl) GetMyPayslipPDF(w http.ResponseWriter, r *http.Request) {
	req, ok := parsePayslipRequest(w, r)
	if !ok {
		return
	}

	doc, err := h.payrollService.RenderPayslipPDF(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, "application/pdf", doc.FileName, doc.Content)
}

// parsePayslipRequest reads the optional month and year query parameters.
func parsePayslipRequest(w http.ResponseWriter, r *http.Request) (payroll.PayslipRequest, bool) {
	var req payroll.PayslipRequest
	q := r.URL.Query()

	if raw := q.Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid month parameter", nil)
			return req, false
		}
		req.Month = &month
	}
	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid year parameter", nil)
			return req, false
		}
		req.Year = &year
	}
	return req, true
}
