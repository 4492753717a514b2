package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/dashboard"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetSummary returns counts and totals for the current month
	GetSummary(w http.ResponseWriter, r *http.Request)
	// GetEvaluation returns the treasurer's evaluation for ?month=
	GetEvaluation(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetSummary handles GET /summary
func (h *dashboardHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetSummary(r.Context(), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetEvaluation handles GET /dashboard
func (h *dashboardHandlerImpl) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetMonthlyEvaluation(r.Context(), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
