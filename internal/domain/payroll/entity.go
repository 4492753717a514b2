package payroll

import (
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// HoursPerDay is the number of normal hours paid for an attended day.
const HoursPerDay = 8

// WeeksPerMonth is the fixed length of a weekly summary.
const WeeksPerMonth = 4

// RateTable holds hourly rates in whole Rupiah.
type RateTable struct {
	Normal   map[employee.Position]int64 `json:"normal"`
	Overtime map[employee.Position]int64 `json:"overtime"`
}

// DefaultRateTable returns the rates used before a treasurer edits them.
func DefaultRateTable() RateTable {
	return RateTable{
		Normal: map[employee.Position]int64{
			employee.PositionIntern:     35000,
			employee.PositionStaff:      50000,
			employee.PositionSupervisor: 100000,
			employee.PositionManager:    200000,
		},
		Overtime: map[employee.Position]int64{
			employee.PositionIntern:     20000,
			employee.PositionStaff:      40000,
			employee.PositionSupervisor: 55000,
			employee.PositionManager:    65000,
		},
	}
}

// NormalRate returns 0 for a position without a rate.
func (t RateTable) NormalRate(p employee.Position) int64 {
	return t.Normal[p]
}

// OvertimeRate returns 0 for a position without a rate.
func (t RateTable) OvertimeRate(p employee.Position) int64 {
	return t.Overtime[p]
}

func (t RateTable) IsEmpty() bool {
	return len(t.Normal) == 0 && len(t.Overtime) == 0
}

func (t RateTable) Clone() RateTable {
	out := RateTable{
		Normal:   make(map[employee.Position]int64, len(t.Normal)),
		Overtime: make(map[employee.Position]int64, len(t.Overtime)),
	}
	for p, v := range t.Normal {
		out.Normal[p] = v
	}
	for p, v := range t.Overtime {
		out.Overtime[p] = v
	}
	return out
}

// LineItem is one attendance day inside a monthly salary.
type LineItem struct {
	Date     string            `json:"date"`
	Status   attendance.Status `json:"status"`
	Overtime int               `json:"overtime"`
	Amount   int64             `json:"amount"`
}

// Performance is the attendance ratio of one employee for one month.
// Rate is nil when nothing was recorded in the month.
type Performance struct {
	Recorded int              `json:"recorded"`
	Present  int              `json:"present"`
	Rate     *decimal.Decimal `json:"rate"`
}

// WeekEntry is one week of a four-week summary.
type WeekEntry struct {
	Days     int `json:"days"`
	Overtime int `json:"overtime"`
}

// WeeklyPayroll is the stored four-week summary of one employee.
// Salary is recomputed whenever the weeks change.
type WeeklyPayroll struct {
	Position employee.Position        `json:"posisi"`
	Salary   int64                    `json:"gaji"`
	Weeks    [WeeksPerMonth]WeekEntry `json:"weeks"`
}

// UnmarshalJSON rejects summaries that do not hold exactly four valid weeks
// and recomputes Salary instead of trusting the stored figure.
func (w *WeeklyPayroll) UnmarshalJSON(data []byte) error {
	var raw struct {
		Position employee.Position `json:"posisi"`
		Weeks    []WeekEntry       `json:"weeks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := CheckWeeks(raw.Weeks); err != nil {
		return err
	}

	w.Position = raw.Position
	copy(w.Weeks[:], raw.Weeks)
	w.Salary, _ = WeeklySalary(w.Position, w.Weeks)
	return nil
}

// CheckWeeks returns ErrInvalidWeeks unless weeks holds exactly WeeksPerMonth
// entries with 0-7 days and non-negative overtime.
func CheckWeeks(weeks []WeekEntry) error {
	if len(weeks) != WeeksPerMonth {
		return fmt.Errorf("%w: got %d weeks", ErrInvalidWeeks, len(weeks))
	}
	for i, wk := range weeks {
		if wk.Days < 0 || wk.Days > 7 || wk.Overtime < 0 {
			return fmt.Errorf("%w: week %d has %d days and %d overtime hours", ErrInvalidWeeks, i+1, wk.Days, wk.Overtime)
		}
	}
	return nil
}

// weeklyRates is fixed for four-week summaries and does not follow rate edits.
var weeklyRates = RateTable{
	Normal: map[employee.Position]int64{
		employee.PositionIntern:     35000,
		employee.PositionStaff:      50000,
		employee.PositionSupervisor: 100000,
		employee.PositionManager:    200000,
	},
	Overtime: map[employee.Position]int64{
		employee.PositionIntern:     20000,
		employee.PositionStaff:      40000,
		employee.PositionSupervisor: 55000,
		employee.PositionManager:    65000,
	},
}

// WeeklySalary returns the four-week total and the amount of each week.
func WeeklySalary(position employee.Position, weeks [WeeksPerMonth]WeekEntry) (int64, [WeeksPerMonth]int64) {
	var total int64
	var perWeek [WeeksPerMonth]int64

	normal := weeklyRates.NormalRate(position)
	overtime := weeklyRates.OvertimeRate(position)
	for i, wk := range weeks {
		perWeek[i] = int64(wk.Days*HoursPerDay)*normal + int64(wk.Overtime)*overtime
		total += perWeek[i]
	}
	return total, perWeek
}
