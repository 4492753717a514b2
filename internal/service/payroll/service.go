package payroll

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/currency"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
)

type PayrollServiceImpl struct {
	store *repository.Store
}

func NewPayrollService(st *repository.Store) payroll.PayrollService {
	return &PayrollServiceImpl{store: st}
}

func validateMonth(month string) error {
	if !validator.IsValidMonth(month) {
		return validator.ValidationErrors{{Field: "month", Message: payroll.ErrInvalidPeriod.Error()}}
	}
	return nil
}

func monthlyResponse(doc *store.Document, key string, e *employee.Employee, month string) payroll.MonthlySalaryResponse {
	total, items := CalculateMonthly(e.Position, doc.Rates, &e.Attendance, month)
	return payroll.MonthlySalaryResponse{
		EmployeeKey:    key,
		Name:           employee.DisplayName(key),
		Position:       e.Position,
		Month:          month,
		Total:          total,
		TotalFormatted: currency.Rupiah(total),
		Items:          items,
	}
}

// ========== MONTHLY ==========

func (s *PayrollServiceImpl) GetMonthlySalary(ctx context.Context, employeeKey string, month string) (payroll.MonthlySalaryResponse, error) {
	if err := validateMonth(month); err != nil {
		return payroll.MonthlySalaryResponse{}, err
	}

	var resp payroll.MonthlySalaryResponse
	err := s.store.View(ctx, func(doc *store.Document) error {
		key := employee.NormalizeKey(employeeKey)
		e, ok := doc.Employees.Get(key)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		resp = monthlyResponse(doc, key, e, month)
		return nil
	})
	return resp, err
}

func (s *PayrollServiceImpl) ListMonthlySalaries(ctx context.Context, month string) ([]payroll.MonthlySalaryResponse, error) {
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	resp := []payroll.MonthlySalaryResponse{}
	err := s.store.View(ctx, func(doc *store.Document) error {
		doc.Employees.Range(func(key string, e *employee.Employee) bool {
			resp = append(resp, monthlyResponse(doc, key, e, month))
			return true
		})
		return nil
	})
	return resp, err
}

// ========== RATES ==========

func (s *PayrollServiceImpl) GetRates(ctx context.Context) (payroll.RateTable, error) {
	var rates payroll.RateTable
	err := s.store.View(ctx, func(doc *store.Document) error {
		rates = doc.Rates.Clone()
		return nil
	})
	return rates, err
}

func (s *PayrollServiceImpl) UpdateRates(ctx context.Context, req payroll.UpdateRatesRequest) (payroll.RateTable, error) {
	if err := req.Validate(); err != nil {
		return payroll.RateTable{}, err
	}

	rates := req.RateTable()
	err := s.store.Update(ctx, func(doc *store.Document) error {
		doc.Rates = rates.Clone()
		return nil
	})
	if err != nil {
		return payroll.RateTable{}, err
	}

	slog.Info("rate table updated", "normal", rates.Normal, "overtime", rates.Overtime)
	return rates, nil
}

// ========== PERFORMANCE ==========

func (s *PayrollServiceImpl) GetAttendancePerformance(ctx context.Context, employeeKey string, month string) (payroll.PerformanceResponse, error) {
	if err := validateMonth(month); err != nil {
		return payroll.PerformanceResponse{}, err
	}

	var resp payroll.PerformanceResponse
	err := s.store.View(ctx, func(doc *store.Document) error {
		key := employee.NormalizeKey(employeeKey)
		e, ok := doc.Employees.Get(key)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		resp = payroll.PerformanceResponse{
			EmployeeKey: key,
			Name:        employee.DisplayName(key),
			Month:       month,
			Performance: AttendancePerformance(&e.Attendance, month),
		}
		return nil
	})
	return resp, err
}
