package employee

import (
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
)

// RenamePolicy decides what happens when an employee is renamed onto a key that is already taken.
type RenamePolicy string

const (
	// RenameOverwrite replaces the existing employee with the renamed one.
	RenameOverwrite RenamePolicy = "overwrite"
	// RenameReject fails the rename with ErrEmployeeAlreadyExists.
	RenameReject RenamePolicy = "reject"
)

func ParseRenamePolicy(s string) (RenamePolicy, error) {
	switch RenamePolicy(NormalizeKey(s)) {
	case "", RenameOverwrite:
		return RenameOverwrite, nil
	case RenameReject:
		return RenameReject, nil
	}
	return "", ErrInvalidRenamePolicy
}

type CreateEmployeeRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Position string `json:"position"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}
	if _, err := ParsePosition(r.Position); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "position",
			Message: err.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateEmployeeRequest leaves the name unchanged when Name is nil or blank.
type UpdateEmployeeRequest struct {
	Key      string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Position *string `json:"position,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Key) {
		errs = append(errs, validator.ValidationError{
			Field:   "key",
			Message: "key is required",
		})
	}
	if r.Name != nil && len(*r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}
	if r.Position != nil {
		if _, err := ParsePosition(*r.Position); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "position",
				Message: err.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	Key             string   `json:"key"`
	Name            string   `json:"name"`
	Position        Position `json:"position"`
	Month           string   `json:"month,omitempty"`
	Salary          int64    `json:"salary"`
	SalaryFormatted string   `json:"salary_formatted"`
}

type ListEmployeeResponse struct {
	Month     string             `json:"month"`
	Total     int                `json:"total"`
	Employees []EmployeeResponse `json:"employees"`
}
