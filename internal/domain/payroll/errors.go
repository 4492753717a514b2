package payroll

import "errors"

var (
	ErrInvalidPeriod         = errors.New("month must be in YYYY-MM format")
	ErrWeeklyPayrollNotFound = errors.New("weekly payroll not found")
	ErrInvalidWeeks          = errors.New("weekly payroll needs exactly 4 weeks of 0-7 days and non-negative overtime")
)
