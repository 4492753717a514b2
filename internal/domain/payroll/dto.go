package payroll

import (
	"fmt"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
)

// ========== RATE DTOs ==========

type UpdateRatesRequest struct {
	Normal   map[string]int64 `json:"normal"`
	Overtime map[string]int64 `json:"overtime"`
}

func (r *UpdateRatesRequest) Validate() error {
	var errs validator.ValidationErrors
	errs = append(errs, validateRateSet("normal", r.Normal)...)
	errs = append(errs, validateRateSet("overtime", r.Overtime)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateRateSet(field string, rates map[string]int64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	seen := make(map[employee.Position]bool, len(rates))
	for raw, v := range rates {
		p, err := employee.ParsePosition(raw)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("%s.%s", field, raw),
				Message: err.Error(),
			})
			continue
		}
		if seen[p] {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("%s.%s", field, p),
				Message: "position is given more than once",
			})
			continue
		}
		if v < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("%s.%s", field, p),
				Message: "rate must be non-negative",
			})
		}
		seen[p] = true
	}
	for _, p := range employee.Positions {
		if !seen[p] {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("%s.%s", field, p),
				Message: "rate is required",
			})
		}
	}
	return errs
}

// RateTable converts a validated request.
func (r *UpdateRatesRequest) RateTable() RateTable {
	t := RateTable{
		Normal:   make(map[employee.Position]int64, len(employee.Positions)),
		Overtime: make(map[employee.Position]int64, len(employee.Positions)),
	}
	for raw, v := range r.Normal {
		if p, err := employee.ParsePosition(raw); err == nil {
			t.Normal[p] = v
		}
	}
	for raw, v := range r.Overtime {
		if p, err := employee.ParsePosition(raw); err == nil {
			t.Overtime[p] = v
		}
	}
	return t
}

// ========== MONTHLY DTOs ==========

type MonthlySalaryResponse struct {
	EmployeeKey    string            `json:"employee_key"`
	Name           string            `json:"name"`
	Position       employee.Position `json:"position"`
	Month          string            `json:"month"`
	Total          int64             `json:"total"`
	TotalFormatted string            `json:"total_formatted"`
	Items          []LineItem        `json:"items"`
}

type PerformanceResponse struct {
	EmployeeKey string `json:"employee_key"`
	Name        string `json:"name"`
	Month       string `json:"month"`
	Performance
}

// ========== WEEKLY DTOs ==========

type SaveWeeklyRequest struct {
	Key      string      `json:"-"`
	Position string      `json:"position"`
	Weeks    []WeekEntry `json:"weeks"`
}

func (r *SaveWeeklyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Key) {
		errs = append(errs, validator.ValidationError{
			Field:   "key",
			Message: "key is required",
		})
	}
	if _, err := employee.ParsePosition(r.Position); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: err.Error(),
		})
	}
	if len(r.Weeks) != WeeksPerMonth {
		errs = append(errs, validator.ValidationError{
			Field:   "weeks",
			Message: fmt.Sprintf("exactly %d weeks are required", WeeksPerMonth),
		})
	}
	for i, w := range r.Weeks {
		if w.Days < 0 || w.Days > 7 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("weeks[%d].days", i),
				Message: "days must be between 0 and 7",
			})
		}
		if w.Overtime < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("weeks[%d].overtime", i),
				Message: "overtime must be non-negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WeeklyPayrollResponse struct {
	EmployeeKey     string            `json:"employee_key"`
	Name            string            `json:"name"`
	Position        employee.Position `json:"position"`
	Weeks           []WeekEntry       `json:"weeks"`
	WeeklyAmounts   []int64           `json:"weekly_amounts"`
	Salary          int64             `json:"salary"`
	SalaryFormatted string            `json:"salary_formatted"`
}
