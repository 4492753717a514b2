package payroll

import (
	"testing"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aniLog() *attendance.Log {
	log := &attendance.Log{}
	log.Set("2024-06-01", attendance.Record{Status: attendance.StatusPresent})
	log.Set("2024-06-02", attendance.Record{Status: attendance.StatusOvertime, Overtime: 3})
	log.Set("2024-06-03", attendance.Record{Status: attendance.StatusLeave})
	return log
}

func TestCalculateMonthly_StaffScenario(t *testing.T) {
	// Act
	total, items := CalculateMonthly(employee.PositionStaff, payroll.DefaultRateTable(), aniLog(), "2024-06")

	// Assert
	assert.Equal(t, int64(920000), total)
	require.Len(t, items, 3)
	assert.Equal(t, payroll.LineItem{Date: "2024-06-01", Status: attendance.StatusPresent, Amount: 400000}, items[0])
	assert.Equal(t, payroll.LineItem{Date: "2024-06-02", Status: attendance.StatusOvertime, Overtime: 3, Amount: 520000}, items[1])
	assert.Equal(t, payroll.LineItem{Date: "2024-06-03", Status: attendance.StatusLeave, Amount: 0}, items[2])
}

func TestCalculateMonthly_InsertionOrderNotDateOrder(t *testing.T) {
	log := &attendance.Log{}
	log.Set("2024-06-20", attendance.Record{Status: attendance.StatusPresent})
	log.Set("2024-06-05", attendance.Record{Status: attendance.StatusPresent})
	log.Set("2024-06-11", attendance.Record{Status: attendance.StatusLeave})

	_, items := CalculateMonthly(employee.PositionIntern, payroll.DefaultRateTable(), log, "2024-06")

	require.Len(t, items, 3)
	assert.Equal(t, "2024-06-20", items[0].Date)
	assert.Equal(t, "2024-06-05", items[1].Date)
	assert.Equal(t, "2024-06-11", items[2].Date)
}

func TestCalculateMonthly_NoRecordsInMonth(t *testing.T) {
	total, items := CalculateMonthly(employee.PositionStaff, payroll.DefaultRateTable(), aniLog(), "2024-07")

	assert.Zero(t, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	total, items = CalculateMonthly(employee.PositionStaff, payroll.DefaultRateTable(), nil, "2024-06")
	assert.Zero(t, total)
	assert.Empty(t, items)
}

func TestCalculateMonthly_LeaveIgnoresOvertime(t *testing.T) {
	log := &attendance.Log{}
	log.Set("2024-06-01", attendance.Record{Status: attendance.StatusLeave, Overtime: 5})
	log.Set("2024-06-02", attendance.Record{Status: "libur", Overtime: 2})

	total, items := CalculateMonthly(employee.PositionManager, payroll.DefaultRateTable(), log, "2024-06")

	assert.Zero(t, total)
	require.Len(t, items, 2)
	for _, it := range items {
		assert.Zero(t, it.Amount)
		assert.Zero(t, it.Overtime)
	}
}

func TestCalculateMonthly_LineItemsSumToTotal(t *testing.T) {
	log := &attendance.Log{}
	statuses := []attendance.Status{attendance.StatusPresent, attendance.StatusOvertime, attendance.StatusLeave}
	dates := []string{
		"2024-03-01", "2024-03-02", "2024-03-04", "2024-03-05", "2024-03-06",
		"2024-03-07", "2024-03-08", "2024-03-11", "2024-03-12", "2024-03-13",
	}
	for i, d := range dates {
		log.Set(d, attendance.Record{Status: statuses[i%3], Overtime: i % 5})
	}

	for _, p := range employee.Positions {
		total, items := CalculateMonthly(p, payroll.DefaultRateTable(), log, "2024-03")

		var sum int64
		for _, it := range items {
			sum += it.Amount
		}
		assert.Equal(t, total, sum, "position %s", p)
	}
}

func TestCalculateMonthly_RawPrefixMatch(t *testing.T) {
	log := &attendance.Log{}
	log.Set("2024-01-15", attendance.Record{Status: attendance.StatusPresent})
	log.Set("2024-09-15", attendance.Record{Status: attendance.StatusPresent})
	log.Set("2024-10-15", attendance.Record{Status: attendance.StatusPresent})
	log.Set("2024-06-xx", attendance.Record{Status: attendance.StatusPresent})

	// a short prefix matches every month it is a prefix of
	total, items := CalculateMonthly(employee.PositionIntern, payroll.DefaultRateTable(), log, "2024-0")
	assert.Len(t, items, 3)
	assert.Equal(t, int64(3*8*35000), total)

	// malformed dates sharing the prefix are counted
	_, items = CalculateMonthly(employee.PositionIntern, payroll.DefaultRateTable(), log, "2024-06")
	require.Len(t, items, 1)
	assert.Equal(t, "2024-06-xx", items[0].Date)
}

func TestCalculateMonthly_MissingRateIsZero(t *testing.T) {
	rates := payroll.RateTable{
		Normal:   map[employee.Position]int64{employee.PositionStaff: 50000},
		Overtime: map[employee.Position]int64{},
	}

	total, _ := CalculateMonthly(employee.PositionStaff, rates, aniLog(), "2024-06")
	assert.Equal(t, int64(800000), total)

	total, _ = CalculateMonthly(employee.Position("direktur"), rates, aniLog(), "2024-06")
	assert.Zero(t, total)
}

func TestMonthlySalaryFor_UnknownEmployee(t *testing.T) {
	doc := store.NewDocument()
	doc.Rates = payroll.DefaultRateTable()

	total, items := MonthlySalaryFor(doc, "nobody", "2024-06")

	assert.Zero(t, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCalculateWeekly(t *testing.T) {
	weeks := [payroll.WeeksPerMonth]payroll.WeekEntry{{Days: 5}, {Days: 5}, {Days: 5}, {Days: 5}}

	total, perWeek := CalculateWeekly(employee.PositionStaff, weeks)

	assert.Equal(t, int64(8000000), total)
	assert.Equal(t, [payroll.WeeksPerMonth]int64{2000000, 2000000, 2000000, 2000000}, perWeek)
}

func TestCalculateWeekly_WithOvertime(t *testing.T) {
	weeks := [payroll.WeeksPerMonth]payroll.WeekEntry{
		{Days: 5, Overtime: 2},
		{Days: 0, Overtime: 0},
		{Days: 7, Overtime: 10},
		{Days: 3, Overtime: 1},
	}

	total, _ := CalculateWeekly(employee.PositionSupervisor, weeks)

	var want int64
	for _, w := range weeks {
		want += int64(w.Days*8)*100000 + int64(w.Overtime)*55000
	}
	assert.Equal(t, want, total)
}

func TestCalculateWeekly_UnknownPosition(t *testing.T) {
	weeks := [payroll.WeeksPerMonth]payroll.WeekEntry{{Days: 5, Overtime: 3}}

	total, _ := CalculateWeekly(employee.Position("direktur"), weeks)

	assert.Zero(t, total)
}

func TestAttendancePerformance(t *testing.T) {
	perf := AttendancePerformance(aniLog(), "2024-06")

	assert.Equal(t, 3, perf.Recorded)
	assert.Equal(t, 2, perf.Present)
	require.NotNil(t, perf.Rate)
	assert.Equal(t, "66.67", perf.Rate.String())
}

func TestAttendancePerformance_NothingRecordedIsUndefined(t *testing.T) {
	perf := AttendancePerformance(aniLog(), "2024-07")

	assert.Zero(t, perf.Recorded)
	assert.Zero(t, perf.Present)
	assert.Nil(t, perf.Rate)

	assert.Nil(t, AttendancePerformance(nil, "2024-07").Rate)
}

func TestAttendancePerformance_FullAttendance(t *testing.T) {
	log := &attendance.Log{}
	log.Set("2024-06-01", attendance.Record{Status: attendance.StatusPresent})
	log.Set("2024-06-02", attendance.Record{Status: attendance.StatusOvertime, Overtime: 1})

	perf := AttendancePerformance(log, "2024-06")

	require.NotNil(t, perf.Rate)
	assert.Equal(t, "100", perf.Rate.String())
}

func TestOvertimeHours(t *testing.T) {
	log := aniLog()
	log.Set("2024-06-04", attendance.Record{Status: attendance.StatusOvertime, Overtime: 2})
	log.Set("2024-07-01", attendance.Record{Status: attendance.StatusOvertime, Overtime: 9})

	assert.Equal(t, 5, OvertimeHours(log, "2024-06"))
	assert.Equal(t, 9, OvertimeHours(log, "2024-07"))
	assert.Zero(t, OvertimeHours(nil, "2024-07"))
}

func TestRateLabel(t *testing.T) {
	rate := decimal.RequireFromString("66.666").Round(2)

	assert.Equal(t, "66.67%", RateLabel(&rate))
	assert.Equal(t, "-", RateLabel(nil))
}
