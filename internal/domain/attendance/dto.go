package attendance

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
)

// OvertimeInput is the raw overtime value as typed by the user.
// It accepts either a JSON string or a JSON number.
type OvertimeInput string

func (o *OvertimeInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OvertimeInput(s)
		return nil
	}
	*o = OvertimeInput(data)
	return nil
}

type RecordAttendanceRequest struct {
	EmployeeKey string        `json:"-"`
	Date        string        `json:"date"`
	Status      string        `json:"status"`
	Overtime    OvertimeInput `json:"overtime"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeKey) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee",
			Message: "employee is required",
		})
	}

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	status, err := ParseStatus(r.Status)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: err.Error(),
		})
	}

	if status == StatusOvertime {
		hours, err := ParseOvertime(string(r.Overtime))
		switch {
		case err != nil:
			errs = append(errs, validator.ValidationError{
				Field:   "overtime",
				Message: err.Error(),
			})
		case hours < MinOvertimeHours || hours > MaxOvertimeHours:
			errs = append(errs, validator.ValidationError{
				Field:   "overtime",
				Message: fmt.Sprintf("overtime must be between %d and %d hours", MinOvertimeHours, MaxOvertimeHours),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceEntry struct {
	Date     string `json:"date"`
	Status   Status `json:"status"`
	Overtime int    `json:"overtime"`
}

type HistoryResponse struct {
	EmployeeKey string            `json:"employee_key"`
	Name        string            `json:"name"`
	Entries     []AttendanceEntry `json:"entries"`
}

type OvertimeSummaryItem struct {
	EmployeeKey string `json:"employee_key"`
	Name        string `json:"name"`
	Hours       int    `json:"hours"`
}
