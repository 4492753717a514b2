package auth

import (
	"context"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
)

type AuthService interface {
	LoginTreasurer(ctx context.Context, req TreasurerLoginRequest) (TokenResponse, error)
	LoginEmployee(ctx context.Context, req EmployeeLoginRequest) (TokenResponse, error)
	// RegisterEmployee creates the employee and logs it in
	RegisterEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (TokenResponse, error)
	// AuthenticateEmployee checks a name/password pair and returns the employee key
	AuthenticateEmployee(ctx context.Context, req EmployeeLoginRequest) (string, error)
	// Logout revokes the session's token
	Logout(ctx context.Context, session Session) error
	// ValidateSession rejects employee sessions whose employee is gone or whose credential changed
	ValidateSession(ctx context.Context, session Session) error
}
