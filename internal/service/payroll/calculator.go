package payroll

import (
	"strings"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/shopspring/decimal"
)

// CalculateMonthly sums the daily attendance whose date starts with month.
// Matching is a plain string prefix, so "2024-0" also matches every month from January to September.
// Line items follow the log's insertion order.
func CalculateMonthly(position employee.Position, rates payroll.RateTable, log *attendance.Log, month string) (int64, []payroll.LineItem) {
	var total int64
	items := []payroll.LineItem{}
	if log == nil {
		return 0, items
	}

	normal := rates.NormalRate(position)
	overtime := rates.OvertimeRate(position)

	log.Range(func(date string, rec attendance.Record) bool {
		if !strings.HasPrefix(date, month) {
			return true
		}

		item := payroll.LineItem{Date: date, Status: rec.Status}
		switch rec.Status {
		case attendance.StatusPresent:
			item.Amount = payroll.HoursPerDay * normal
		case attendance.StatusOvertime:
			item.Overtime = rec.Overtime
			item.Amount = payroll.HoursPerDay*normal + int64(rec.Overtime)*overtime
		}

		total += item.Amount
		items = append(items, item)
		return true
	})

	return total, items
}

// MonthlySalaryFor looks the employee up in doc. An unknown key yields a zero total and no items.
func MonthlySalaryFor(doc *store.Document, key string, month string) (int64, []payroll.LineItem) {
	e, ok := doc.Employees.Get(key)
	if !ok || e == nil {
		return 0, []payroll.LineItem{}
	}
	return CalculateMonthly(e.Position, doc.Rates, &e.Attendance, month)
}

// CalculateWeekly returns the four-week total and the amount of each week.
// Four-week summaries use fixed rates that do not follow rate edits.
func CalculateWeekly(position employee.Position, weeks [payroll.WeeksPerMonth]payroll.WeekEntry) (int64, [payroll.WeeksPerMonth]int64) {
	return payroll.WeeklySalary(position, weeks)
}

var hundred = decimal.NewFromInt(100)

// AttendancePerformance counts recorded and attended days in month using the same prefix match as CalculateMonthly.
func AttendancePerformance(log *attendance.Log, month string) payroll.Performance {
	var perf payroll.Performance
	if log == nil {
		return perf
	}

	log.Range(func(date string, rec attendance.Record) bool {
		if !strings.HasPrefix(date, month) {
			return true
		}
		perf.Recorded++
		if rec.Status.IsPresent() {
			perf.Present++
		}
		return true
	})

	if perf.Recorded > 0 {
		rate := decimal.NewFromInt(int64(perf.Present)).
			Mul(hundred).
			Div(decimal.NewFromInt(int64(perf.Recorded))).
			Round(2)
		perf.Rate = &rate
	}
	return perf
}

// OvertimeHours totals the overtime field of every record in month.
func OvertimeHours(log *attendance.Log, month string) int {
	var hours int
	if log == nil {
		return 0
	}
	log.Range(func(date string, rec attendance.Record) bool {
		if strings.HasPrefix(date, month) {
			hours += rec.Overtime
		}
		return true
	})
	return hours
}

// RateLabel renders an attendance rate, "-" when nothing was recorded.
func RateLabel(rate *decimal.Decimal) string {
	if rate == nil {
		return "-"
	}
	return rate.StringFixed(2) + "%"
}

// TotalPayroll sums every employee's salary for month.
func TotalPayroll(doc *store.Document, month string) int64 {
	var total int64
	doc.Employees.Range(func(_ string, e *employee.Employee) bool {
		salary, _ := CalculateMonthly(e.Position, doc.Rates, &e.Attendance, month)
		total += salary
		return true
	})
	return total
}
