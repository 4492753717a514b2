package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/middleware"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/response"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// monthParam reads ?month=, defaulting to the current month
func monthParam(r *http.Request) string {
	if month := r.URL.Query().Get("month"); month != "" {
		return month
	}
	return validator.CurrentMonth(time.Now())
}

type PayrollHandler interface {
	GetMyPayroll(w http.ResponseWriter, r *http.Request)
	GetMyPerformance(w http.ResponseWriter, r *http.Request)
	GetEmployeePayroll(w http.ResponseWriter, r *http.Request)
	GetEmployeePerformance(w http.ResponseWriter, r *http.Request)
	GetRates(w http.ResponseWriter, r *http.Request)
	UpdateRates(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// GetMyPayroll returns the salary breakdown of the logged-in employee
func (h *payrollHandlerImpl) GetMyPayroll(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFromContext(r.Context())

	result, err := h.payrollService.GetMonthlySalary(r.Context(), session.EmployeeKey, monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetMyPerformance(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFromContext(r.Context())

	result, err := h.payrollService.GetAttendancePerformance(r.Context(), session.EmployeeKey, monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetEmployeePayroll(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetMonthlySalary(r.Context(), chi.URLParam(r, "key"), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetEmployeePerformance(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetAttendancePerformance(r.Context(), chi.URLParam(r, "key"), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.payrollService.GetRates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rates)
}

// UpdateRates replaces both rate sets at once
func (h *payrollHandlerImpl) UpdateRates(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRates decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rates, err := h.payrollService.UpdateRates(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Rates updated successfully", rates)
}
