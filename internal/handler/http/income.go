package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/income"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type IncomeHandler interface {
	GetIncome(w http.ResponseWriter, r *http.Request)
	SetIncome(w http.ResponseWriter, r *http.Request)
}

type incomeHandlerImpl struct {
	incomeService income.IncomeService
}

func NewIncomeHandler(incomeService income.IncomeService) IncomeHandler {
	return &incomeHandlerImpl{incomeService: incomeService}
}

func (h *incomeHandlerImpl) GetIncome(w http.ResponseWriter, r *http.Request) {
	result, err := h.incomeService.GetIncome(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *incomeHandlerImpl) SetIncome(w http.ResponseWriter, r *http.Request) {
	var req income.SetIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetIncome decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Month = chi.URLParam(r, "month")

	result, err := h.incomeService.SetIncome(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Income saved successfully", result)
}
