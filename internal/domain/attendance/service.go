package attendance

import "context"

// AttendanceService defines business logic for daily attendance
type AttendanceService interface {
	// RecordAttendance stores one day for an employee, overwriting an existing entry for that date
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (AttendanceEntry, error)

	// GetHistory returns every record of an employee, newest date first
	GetHistory(ctx context.Context, employeeKey string) (HistoryResponse, error)

	// GetOvertimeSummary totals overtime hours per employee for a month
	GetOvertimeSummary(ctx context.Context, month string) ([]OvertimeSummaryItem, error)
}
