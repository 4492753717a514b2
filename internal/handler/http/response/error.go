package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTreasurerAccessRequired):
		Forbidden(w, "Treasurer access required")
	case errors.Is(err, auth.ErrEmployeeAccessRequired):
		Forbidden(w, "Employee access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeAlreadyExists):
		Conflict(w, "Employee already exists")
	case errors.Is(err, employee.ErrInvalidPosition):
		ValidationError(w, map[string]string{"position": err.Error()})

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidStatus):
		ValidationError(w, map[string]string{"status": err.Error()})
	case errors.Is(err, attendance.ErrInvalidOvertime):
		ValidationError(w, map[string]string{"overtime": err.Error()})

	// Payroll domain errors
	case errors.Is(err, payroll.ErrWeeklyPayrollNotFound):
		NotFound(w, "Weekly payroll not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		ValidationError(w, map[string]string{"month": err.Error()})

	// Store errors
	case errors.Is(err, store.ErrUnknownSchema), errors.Is(err, store.ErrCorruptDocument):
		slog.Error("data file is unreadable", "error", err)
		InternalServerError(w, "Stored data could not be read")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
