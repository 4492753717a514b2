package dashboard

import (
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// SummaryResponse is the public landing overview.
type SummaryResponse struct {
	Month                 string `json:"month"`
	EmployeeCount         int    `json:"employee_count"`
	TotalPayroll          int64  `json:"total_payroll"`
	TotalPayrollFormatted string `json:"total_payroll_formatted"`
	Income                int64  `json:"income"`
	IncomeFormatted       string `json:"income_formatted"`
}

type PayrollRow struct {
	EmployeeKey     string            `json:"employee_key"`
	Name            string            `json:"name"`
	Position        employee.Position `json:"position"`
	Salary          int64             `json:"salary"`
	SalaryFormatted string            `json:"salary_formatted"`
}

type PerformanceRow struct {
	EmployeeKey string           `json:"employee_key"`
	Name        string           `json:"name"`
	Present     int              `json:"present"`
	Recorded    int              `json:"recorded"`
	Rate        *decimal.Decimal `json:"rate"`
	// RateLabel is "-" when nothing was recorded.
	RateLabel string `json:"rate_label"`
}

// EvaluationResponse is the treasurer's monthly evaluation.
type EvaluationResponse struct {
	Month                  string                           `json:"month"`
	Payroll                []PayrollRow                     `json:"payroll"`
	TotalPayroll           int64                            `json:"total_payroll"`
	TotalPayrollFormatted  string                           `json:"total_payroll_formatted"`
	Income                 int64                            `json:"income"`
	IncomeFormatted        string                           `json:"income_formatted"`
	YearlyPayroll          int64                            `json:"yearly_payroll"`
	YearlyPayrollFormatted string                           `json:"yearly_payroll_formatted"`
	Performance            []PerformanceRow                 `json:"performance"`
	Overtime               []attendance.OvertimeSummaryItem `json:"overtime"`
}
