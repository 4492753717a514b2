package payroll

import "context"

// PayrollService computes daily-attendance salaries and manages the rate table
type PayrollService interface {
	// GetMonthlySalary fails with employee.ErrEmployeeNotFound for an unknown key
	GetMonthlySalary(ctx context.Context, employeeKey string, month string) (MonthlySalaryResponse, error)

	// ListMonthlySalaries returns one entry per employee in stored order
	ListMonthlySalaries(ctx context.Context, month string) ([]MonthlySalaryResponse, error)

	GetRates(ctx context.Context) (RateTable, error)

	// UpdateRates replaces the whole rate table in one unit of work
	UpdateRates(ctx context.Context, req UpdateRatesRequest) (RateTable, error)

	// GetAttendancePerformance reports the attendance ratio for a month
	GetAttendancePerformance(ctx context.Context, employeeKey string, month string) (PerformanceResponse, error)
}

// WeeklyService manages four-week summaries
type WeeklyService interface {
	SaveWeekly(ctx context.Context, req SaveWeeklyRequest) (WeeklyPayrollResponse, error)
	GetWeekly(ctx context.Context, key string) (WeeklyPayrollResponse, error)
	ListWeekly(ctx context.Context) ([]WeeklyPayrollResponse, error)
	DeleteWeekly(ctx context.Context, key string) error
}
