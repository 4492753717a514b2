package weekly

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/currency"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
	payrollservice "github.com/cmlabs-hris/sistem-gaji/internal/service/payroll"
)

type WeeklyServiceImpl struct {
	store *repository.Store
}

func NewWeeklyService(st *repository.Store) payroll.WeeklyService {
	return &WeeklyServiceImpl{store: st}
}

func toResponse(key string, w *payroll.WeeklyPayroll) payroll.WeeklyPayrollResponse {
	_, perWeek := payrollservice.CalculateWeekly(w.Position, w.Weeks)
	return payroll.WeeklyPayrollResponse{
		EmployeeKey:     key,
		Name:            employee.DisplayName(key),
		Position:        w.Position,
		Weeks:           w.Weeks[:],
		WeeklyAmounts:   perWeek[:],
		Salary:          w.Salary,
		SalaryFormatted: currency.Rupiah(w.Salary),
	}
}

func (s *WeeklyServiceImpl) SaveWeekly(ctx context.Context, req payroll.SaveWeeklyRequest) (payroll.WeeklyPayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.WeeklyPayrollResponse{}, err
	}

	key := employee.NormalizeKey(req.Key)
	position, _ := employee.ParsePosition(req.Position)

	w := &payroll.WeeklyPayroll{Position: position}
	copy(w.Weeks[:], req.Weeks)
	w.Salary, _ = payrollservice.CalculateWeekly(w.Position, w.Weeks)

	err := s.store.Update(ctx, func(doc *store.Document) error {
		doc.Weekly.Set(key, w)
		return nil
	})
	if err != nil {
		return payroll.WeeklyPayrollResponse{}, err
	}

	slog.Info("weekly payroll saved", "employee", key, "salary", w.Salary)
	return toResponse(key, w), nil
}

func (s *WeeklyServiceImpl) GetWeekly(ctx context.Context, key string) (payroll.WeeklyPayrollResponse, error) {
	var resp payroll.WeeklyPayrollResponse
	err := s.store.View(ctx, func(doc *store.Document) error {
		key := employee.NormalizeKey(key)
		w, ok := doc.Weekly.Get(key)
		if !ok {
			return payroll.ErrWeeklyPayrollNotFound
		}
		resp = toResponse(key, w)
		return nil
	})
	return resp, err
}

func (s *WeeklyServiceImpl) ListWeekly(ctx context.Context) ([]payroll.WeeklyPayrollResponse, error) {
	resp := []payroll.WeeklyPayrollResponse{}
	err := s.store.View(ctx, func(doc *store.Document) error {
		doc.Weekly.Range(func(key string, w *payroll.WeeklyPayroll) bool {
			resp = append(resp, toResponse(key, w))
			return true
		})
		return nil
	})
	return resp, err
}

func (s *WeeklyServiceImpl) DeleteWeekly(ctx context.Context, key string) error {
	key = employee.NormalizeKey(key)
	err := s.store.Update(ctx, func(doc *store.Document) error {
		if !doc.Weekly.Delete(key) {
			return payroll.ErrWeeklyPayrollNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("weekly payroll deleted", "employee", key)
	return nil
}
