package income

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/income"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/currency"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
)

type IncomeServiceImpl struct {
	store *repository.Store
}

func NewIncomeService(st *repository.Store) income.IncomeService {
	return &IncomeServiceImpl{store: st}
}

func newIncomeResponse(month string, amount int64) income.IncomeResponse {
	return income.IncomeResponse{Month: month, Amount: amount, AmountFormatted: currency.Rupiah(amount)}
}

func (s *IncomeServiceImpl) SetIncome(ctx context.Context, req income.SetIncomeRequest) (income.IncomeResponse, error) {
	if err := req.Validate(); err != nil {
		return income.IncomeResponse{}, err
	}

	err := s.store.Update(ctx, func(doc *store.Document) error {
		if doc.Income == nil {
			doc.Income = make(map[string]int64)
		}
		doc.Income[req.Month] = req.Amount
		return nil
	})
	if err != nil {
		return income.IncomeResponse{}, err
	}

	slog.Info("income updated", "month", req.Month, "amount", req.Amount)
	return newIncomeResponse(req.Month, req.Amount), nil
}

func (s *IncomeServiceImpl) GetIncome(ctx context.Context, month string) (income.IncomeResponse, error) {
	if !validator.IsValidMonth(month) {
		return income.IncomeResponse{}, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}

	var amount int64
	err := s.store.View(ctx, func(doc *store.Document) error {
		amount = doc.Income[month]
		return nil
	})
	if err != nil {
		return income.IncomeResponse{}, err
	}
	return newIncomeResponse(month, amount), nil
}
