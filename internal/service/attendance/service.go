package attendance

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
	payrollservice "github.com/cmlabs-hris/sistem-gaji/internal/service/payroll"
)

type AttendanceServiceImpl struct {
	store *repository.Store
	now   func() time.Time
}

func NewAttendanceService(st *repository.Store) attendance.AttendanceService {
	return &AttendanceServiceImpl{store: st, now: time.Now}
}

func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceEntry, error) {
	if strings.TrimSpace(req.Date) == "" {
		req.Date = s.now().Format("2006-01-02")
	}
	if err := req.Validate(); err != nil {
		return attendance.AttendanceEntry{}, err
	}

	status, _ := attendance.ParseStatus(req.Status)
	overtime := 0
	if status == attendance.StatusOvertime {
		overtime, _ = attendance.ParseOvertime(string(req.Overtime))
	}
	key := employee.NormalizeKey(req.EmployeeKey)

	err := s.store.Update(ctx, func(doc *store.Document) error {
		e, ok := doc.Employees.Get(key)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		e.Attendance.Set(req.Date, attendance.Record{Status: status, Overtime: overtime})
		return nil
	})
	if err != nil {
		return attendance.AttendanceEntry{}, err
	}

	slog.Info("attendance recorded", "employee", key, "date", req.Date, "status", status, "overtime", overtime)
	return attendance.AttendanceEntry{Date: req.Date, Status: status, Overtime: overtime}, nil
}

func (s *AttendanceServiceImpl) GetHistory(ctx context.Context, employeeKey string) (attendance.HistoryResponse, error) {
	key := employee.NormalizeKey(employeeKey)
	resp := attendance.HistoryResponse{
		EmployeeKey: key,
		Name:        employee.DisplayName(key),
		Entries:     []attendance.AttendanceEntry{},
	}

	err := s.store.View(ctx, func(doc *store.Document) error {
		e, ok := doc.Employees.Get(key)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		e.Attendance.Range(func(date string, rec attendance.Record) bool {
			resp.Entries = append(resp.Entries, attendance.AttendanceEntry{Date: date, Status: rec.Status, Overtime: rec.Overtime})
			return true
		})
		return nil
	})
	if err != nil {
		return attendance.HistoryResponse{}, err
	}

	// newest first
	slices.SortStableFunc(resp.Entries, func(a, b attendance.AttendanceEntry) int {
		return cmp.Compare(b.Date, a.Date)
	})
	return resp, nil
}

func (s *AttendanceServiceImpl) GetOvertimeSummary(ctx context.Context, month string) ([]attendance.OvertimeSummaryItem, error) {
	if !validator.IsValidMonth(month) {
		return nil, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}

	items := []attendance.OvertimeSummaryItem{}
	err := s.store.View(ctx, func(doc *store.Document) error {
		items = OvertimeSummary(doc, month)
		return nil
	})
	return items, err
}

// OvertimeSummary lists employees with overtime in month, most hours first.
func OvertimeSummary(doc *store.Document, month string) []attendance.OvertimeSummaryItem {
	items := []attendance.OvertimeSummaryItem{}
	doc.Employees.Range(func(key string, e *employee.Employee) bool {
		if hours := payrollservice.OvertimeHours(&e.Attendance, month); hours > 0 {
			items = append(items, attendance.OvertimeSummaryItem{
				EmployeeKey: key,
				Name:        employee.DisplayName(key),
				Hours:       hours,
			})
		}
		return true
	})
	slices.SortStableFunc(items, func(a, b attendance.OvertimeSummaryItem) int {
		return cmp.Compare(b.Hours, a.Hours)
	})
	return items
}
