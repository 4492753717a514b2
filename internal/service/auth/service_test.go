package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/jwt"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/storage"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository/jsonfile"
	employeeservice "github.com/cmlabs-hris/sistem-gaji/internal/service/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	svc   auth.AuthService
	jwt   *jwt.JWTService
	store *repository.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	st := repository.NewStore(jsonfile.NewRepository(files, ""), payroll.DefaultRateTable())

	verifier := NewPlaintextVerifier(NewBcryptVerifier(bcrypt.MinCost))
	treasurerHash, err := verifier.Hash("12345")
	require.NoError(t, err)

	jwtService, err := jwt.NewJWTService("test-secret", "1h")
	require.NoError(t, err)

	employees := employeeservice.NewEmployeeService(st, verifier, employee.RenameOverwrite)
	svc := NewAuthService(st, verifier, jwtService, employees, TreasurerCredential{
		Email:        "Bendahara@Email.com",
		PasswordHash: treasurerHash,
	})
	return fixture{svc: svc, jwt: jwtService, store: st}
}

func TestAuthService_LoginTreasurer(t *testing.T) {
	f := newFixture(t)

	// Act
	resp, err := f.svc.LoginTreasurer(context.Background(), auth.TreasurerLoginRequest{Email: " bendahara@email.com", Password: "12345"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, auth.RoleTreasurer, resp.Role)
	assert.Empty(t, resp.EmployeeKey)

	session, err := f.jwt.ParseAccessToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleTreasurer, session.Role)
}

func TestAuthService_LoginTreasurerRejectsWrongCredentials(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.LoginTreasurer(context.Background(), auth.TreasurerLoginRequest{Email: "bendahara@email.com", Password: "nope"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.LoginTreasurer(context.Background(), auth.TreasurerLoginRequest{Email: "other@email.com", Password: "12345"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.LoginTreasurer(context.Background(), auth.TreasurerLoginRequest{Email: "not-an-email", Password: "12345"})
	var vErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &vErrs)
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	f := newFixture(t)

	reg, err := f.svc.RegisterEmployee(context.Background(), employee.CreateEmployeeRequest{Name: "Ani", Password: "rahasia", Position: "staff"})
	require.NoError(t, err)
	assert.Equal(t, "ani", reg.EmployeeKey)
	assert.Equal(t, auth.RoleEmployee, reg.Role)

	// Act
	resp, err := f.svc.LoginEmployee(context.Background(), auth.EmployeeLoginRequest{Name: "  ANI ", Password: "rahasia"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "ani", resp.EmployeeKey)
	assert.Equal(t, "Ani", resp.Name)

	session, err := f.jwt.ParseAccessToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ani", session.EmployeeKey)
}

func TestAuthService_LoginEmployeeFailures(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.RegisterEmployee(context.Background(), employee.CreateEmployeeRequest{Name: "ani", Password: "rahasia", Position: "staff"})
	require.NoError(t, err)

	_, err = f.svc.LoginEmployee(context.Background(), auth.EmployeeLoginRequest{Name: "ani", Password: "salah"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.LoginEmployee(context.Background(), auth.EmployeeLoginRequest{Name: "ghost", Password: "rahasia"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LegacyPlaintextIsRehashed(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Update(context.Background(), func(doc *store.Document) error {
		doc.Employees.Set("budi", &employee.Employee{Password: "lama", Position: employee.PositionIntern})
		return nil
	}))

	key, err := f.svc.AuthenticateEmployee(context.Background(), auth.EmployeeLoginRequest{Name: "Budi", Password: "lama"})
	require.NoError(t, err)
	assert.Equal(t, "budi", key)

	var stored string
	require.NoError(t, f.store.View(context.Background(), func(doc *store.Document) error {
		e, _ := doc.Employees.Get("budi")
		stored = e.Password
		return nil
	}))
	assert.NotEqual(t, "lama", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("lama")))

	// still works after the upgrade
	_, err = f.svc.AuthenticateEmployee(context.Background(), auth.EmployeeLoginRequest{Name: "budi", Password: "lama"})
	assert.NoError(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	resp, err := f.svc.LoginTreasurer(context.Background(), auth.TreasurerLoginRequest{Email: "bendahara@email.com", Password: "12345"})
	require.NoError(t, err)
	session, err := f.jwt.ParseAccessToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)

	// Act
	require.NoError(t, f.svc.Logout(context.Background(), session))

	// Assert
	_, err = f.jwt.ParseAccessToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	assert.ErrorIs(t, f.svc.Logout(context.Background(), auth.Session{}), auth.ErrInvalidToken)
}

func TestAuthService_ValidateSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	employees := employeeservice.NewEmployeeService(f.store, NewBcryptVerifier(bcrypt.MinCost), employee.RenameOverwrite)

	reg, err := f.svc.RegisterEmployee(ctx, employee.CreateEmployeeRequest{Name: "eka", Password: "satu", Position: "staff"})
	require.NoError(t, err)
	oldSession, err := f.jwt.ParseAccessToken(ctx, reg.AccessToken)
	require.NoError(t, err)
	assert.NoError(t, f.svc.ValidateSession(ctx, oldSession))

	require.NoError(t, employees.DeleteEmployee(ctx, "eka"))
	assert.ErrorIs(t, f.svc.ValidateSession(ctx, oldSession), auth.ErrInvalidToken)

	// Act
	again, err := f.svc.RegisterEmployee(ctx, employee.CreateEmployeeRequest{Name: "eka", Password: "dua", Position: "staff"})
	require.NoError(t, err)
	newSession, err := f.jwt.ParseAccessToken(ctx, again.AccessToken)
	require.NoError(t, err)

	// Assert
	assert.ErrorIs(t, f.svc.ValidateSession(ctx, oldSession), auth.ErrInvalidToken)
	assert.NoError(t, f.svc.ValidateSession(ctx, newSession))
	assert.NoError(t, f.svc.ValidateSession(ctx, auth.Session{Role: auth.RoleTreasurer, TokenID: "x"}))
}
