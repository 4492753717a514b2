package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/dashboard"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/currency"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
	attendanceservice "github.com/cmlabs-hris/sistem-gaji/internal/service/attendance"
	payrollservice "github.com/cmlabs-hris/sistem-gaji/internal/service/payroll"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	store *repository.Store
}

func NewDashboardService(st *repository.Store) dashboard.DashboardService {
	return &DashboardServiceImpl{store: st}
}

func (s *DashboardServiceImpl) GetSummary(ctx context.Context, now time.Time) (*dashboard.SummaryResponse, error) {
	month := validator.CurrentMonth(now)
	resp := &dashboard.SummaryResponse{Month: month}

	err := s.store.View(ctx, func(doc *store.Document) error {
		resp.EmployeeCount = doc.Employees.Len()
		resp.TotalPayroll = payrollservice.TotalPayroll(doc, month)
		resp.Income = doc.Income[month]
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.TotalPayrollFormatted = currency.Rupiah(resp.TotalPayroll)
	resp.IncomeFormatted = currency.Rupiah(resp.Income)
	return resp, nil
}

// GetMonthlyEvaluation builds every section from one loaded document.
// The yearly total runs one goroutine per month over that read-only copy.
func (s *DashboardServiceImpl) GetMonthlyEvaluation(ctx context.Context, month string) (*dashboard.EvaluationResponse, error) {
	if !validator.IsValidMonth(month) {
		return nil, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	resp := &dashboard.EvaluationResponse{Month: month}

	err := s.store.View(ctx, func(doc *store.Document) error {
		resp.Payroll = payrollRows(doc, month)
		for _, row := range resp.Payroll {
			resp.TotalPayroll += row.Salary
		}
		resp.Income = doc.Income[month]
		resp.Performance = performanceRows(doc, month)
		resp.Overtime = attendanceservice.OvertimeSummary(doc, month)

		yearly, err := yearlyPayroll(ctx, doc, month[:4])
		if err != nil {
			return err
		}
		resp.YearlyPayroll = yearly
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp.TotalPayrollFormatted = currency.Rupiah(resp.TotalPayroll)
	resp.IncomeFormatted = currency.Rupiah(resp.Income)
	resp.YearlyPayrollFormatted = currency.Rupiah(resp.YearlyPayroll)
	return resp, nil
}

func payrollRows(doc *store.Document, month string) []dashboard.PayrollRow {
	rows := make([]dashboard.PayrollRow, 0, doc.Employees.Len())
	doc.Employees.Range(func(key string, e *employee.Employee) bool {
		salary, _ := payrollservice.CalculateMonthly(e.Position, doc.Rates, &e.Attendance, month)
		rows = append(rows, dashboard.PayrollRow{
			EmployeeKey:     key,
			Name:            employee.DisplayName(key),
			Position:        e.Position,
			Salary:          salary,
			SalaryFormatted: currency.Rupiah(salary),
		})
		return true
	})
	slices.SortStableFunc(rows, func(a, b dashboard.PayrollRow) int {
		return cmp.Compare(b.Salary, a.Salary)
	})
	return rows
}

func performanceRows(doc *store.Document, month string) []dashboard.PerformanceRow {
	rows := make([]dashboard.PerformanceRow, 0, doc.Employees.Len())
	doc.Employees.Range(func(key string, e *employee.Employee) bool {
		perf := payrollservice.AttendancePerformance(&e.Attendance, month)
		rows = append(rows, dashboard.PerformanceRow{
			EmployeeKey: key,
			Name:        employee.DisplayName(key),
			Present:     perf.Present,
			Recorded:    perf.Recorded,
			Rate:        perf.Rate,
			RateLabel:   payrollservice.RateLabel(perf.Rate),
		})
		return true
	})
	// rate descending, employees without records last
	slices.SortStableFunc(rows, func(a, b dashboard.PerformanceRow) int {
		switch {
		case a.Rate == nil && b.Rate == nil:
			return 0
		case a.Rate == nil:
			return 1
		case b.Rate == nil:
			return -1
		}
		return b.Rate.Cmp(*a.Rate)
	})
	return rows
}

func yearlyPayroll(ctx context.Context, doc *store.Document, year string) (int64, error) {
	if _, err := strconv.Atoi(year); err != nil {
		return 0, fmt.Errorf("invalid year %q: %w", year, err)
	}

	var totals [12]int64
	g, gCtx := errgroup.WithContext(ctx)
	for i := range totals {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			totals[i] = payrollservice.TotalPayroll(doc, fmt.Sprintf("%s-%02d", year, i+1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var sum int64
	for _, t := range totals {
		sum += t
	}
	return sum, nil
}
