package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/currency"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
	payrollservice "github.com/cmlabs-hris/sistem-gaji/internal/service/payroll"
)

type EmployeeServiceImpl struct {
	store        *repository.Store
	verifier     auth.CredentialVerifier
	renamePolicy employee.RenamePolicy
	now          func() time.Time
}

func NewEmployeeService(
	st *repository.Store,
	verifier auth.CredentialVerifier,
	renamePolicy employee.RenamePolicy,
) employee.EmployeeService {
	if renamePolicy == "" {
		renamePolicy = employee.RenameOverwrite
	}
	return &EmployeeServiceImpl{
		store:        st,
		verifier:     verifier,
		renamePolicy: renamePolicy,
		now:          time.Now,
	}
}

// resolveMonth defaults to the current month
func (s *EmployeeServiceImpl) resolveMonth(month string) (string, error) {
	if month == "" {
		return validator.CurrentMonth(s.now()), nil
	}
	if !validator.IsValidMonth(month) {
		return "", validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	return month, nil
}

func mapEmployeeToResponse(doc *store.Document, key string, e *employee.Employee, month string) employee.EmployeeResponse {
	salary, _ := payrollservice.CalculateMonthly(e.Position, doc.Rates, &e.Attendance, month)
	return employee.EmployeeResponse{
		Key:             key,
		Name:            employee.DisplayName(key),
		Position:        e.Position,
		Month:           month,
		Salary:          salary,
		SalaryFormatted: currency.Rupiah(salary),
	}
}

func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	key := employee.NormalizeKey(req.Name)
	position, _ := employee.ParsePosition(req.Position)

	hash, err := s.verifier.Hash(req.Password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var resp employee.EmployeeResponse
	err = s.store.Update(ctx, func(doc *store.Document) error {
		if doc.Employees.Has(key) {
			return employee.ErrEmployeeAlreadyExists
		}
		e := &employee.Employee{Password: hash, Position: position}
		doc.Employees.Set(key, e)
		resp = mapEmployeeToResponse(doc, key, e, validator.CurrentMonth(s.now()))
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee", key, "position", position)
	return resp, nil
}

func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, key string, month string) (employee.EmployeeResponse, error) {
	month, err := s.resolveMonth(month)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	var resp employee.EmployeeResponse
	err = s.store.View(ctx, func(doc *store.Document) error {
		key := employee.NormalizeKey(key)
		e, ok := doc.Employees.Get(key)
		if !ok {
			return employee.ErrEmployeeNotFound
		}
		resp = mapEmployeeToResponse(doc, key, e, month)
		return nil
	})
	return resp, err
}

func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, month string) (employee.ListEmployeeResponse, error) {
	month, err := s.resolveMonth(month)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	resp := employee.ListEmployeeResponse{Month: month, Employees: []employee.EmployeeResponse{}}
	err = s.store.View(ctx, func(doc *store.Document) error {
		doc.Employees.Range(func(key string, e *employee.Employee) bool {
			resp.Employees = append(resp.Employees, mapEmployeeToResponse(doc, key, e, month))
			return true
		})
		return nil
	})
	resp.Total = len(resp.Employees)
	return resp, err
}

// UpdateEmployee renames by moving the payload to the new key. A new key goes to the end of
// the ordering; renaming onto a taken key replaces that employee in its position unless the
// policy is RenameReject.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	oldKey := employee.NormalizeKey(req.Key)
	newKey := oldKey
	if req.Name != nil && !validator.IsEmpty(*req.Name) {
		newKey = employee.NormalizeKey(*req.Name)
	}

	var resp employee.EmployeeResponse
	var overwritten bool
	err := s.store.Update(ctx, func(doc *store.Document) error {
		e, ok := doc.Employees.Get(oldKey)
		if !ok {
			return employee.ErrEmployeeNotFound
		}

		if newKey != oldKey {
			if doc.Employees.Has(newKey) {
				if s.renamePolicy == employee.RenameReject {
					return employee.ErrEmployeeAlreadyExists
				}
				overwritten = true
			}
			doc.Employees.Delete(oldKey)
			doc.Employees.Set(newKey, e)
		}

		if req.Position != nil {
			e.Position, _ = employee.ParsePosition(*req.Position)
		}

		resp = mapEmployeeToResponse(doc, newKey, e, validator.CurrentMonth(s.now()))
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if overwritten {
		slog.Warn("employee rename replaced an existing employee", "from", oldKey, "to", newKey)
	}
	slog.Info("employee updated", "employee", newKey, "previous_key", oldKey, "position", resp.Position)
	return resp, nil
}

func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, key string) error {
	key = employee.NormalizeKey(key)
	err := s.store.Update(ctx, func(doc *store.Document) error {
		if !doc.Employees.Delete(key) {
			return employee.ErrEmployeeNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("employee deleted", "employee", key)
	return nil
}
