package employee

import "context"

// EmployeeService defines business logic for the employee registry
type EmployeeService interface {
	// CreateEmployee registers a new employee; a taken key fails with ErrEmployeeAlreadyExists
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// GetEmployee returns one employee with the estimated salary for month
	GetEmployee(ctx context.Context, key string, month string) (EmployeeResponse, error)

	// ListEmployees returns every employee in stored order with the estimated salary for month
	ListEmployees(ctx context.Context, month string) (ListEmployeeResponse, error)

	// UpdateEmployee renames and/or changes the position of an employee
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee and its attendance
	DeleteEmployee(ctx context.Context, key string) error
}
