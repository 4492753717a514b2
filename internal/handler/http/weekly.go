package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WeeklyHandler interface {
	ListWeekly(w http.ResponseWriter, r *http.Request)
	GetWeekly(w http.ResponseWriter, r *http.Request)
	SaveWeekly(w http.ResponseWriter, r *http.Request)
	DeleteWeekly(w http.ResponseWriter, r *http.Request)
}

type weeklyHandlerImpl struct {
	weeklyService payroll.WeeklyService
}

func NewWeeklyHandler(weeklyService payroll.WeeklyService) WeeklyHandler {
	return &weeklyHandlerImpl{weeklyService: weeklyService}
}

func (h *weeklyHandlerImpl) ListWeekly(w http.ResponseWriter, r *http.Request) {
	result, err := h.weeklyService.ListWeekly(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *weeklyHandlerImpl) GetWeekly(w http.ResponseWriter, r *http.Request) {
	result, err := h.weeklyService.GetWeekly(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveWeekly creates or replaces the summary under {key}
func (h *weeklyHandlerImpl) SaveWeekly(w http.ResponseWriter, r *http.Request) {
	var req payroll.SaveWeeklyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SaveWeekly decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Key = chi.URLParam(r, "key")

	result, err := h.weeklyService.SaveWeekly(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly payroll saved successfully", result)
}

func (h *weeklyHandlerImpl) DeleteWeekly(w http.ResponseWriter, r *http.Request) {
	if err := h.weeklyService.DeleteWeekly(r.Context(), chi.URLParam(r, "key")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Weekly payroll deleted successfully", nil)
}
