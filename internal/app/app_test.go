package app

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/config"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		Store: config.StoreConfig{
			Driver:     driver,
			Path:       dir,
			Filename:   "databaseghe1.json",
			SQLitePath: dir + "/db/sistem-gaji.db",
		},
		JWT: config.JWTConfig{Secret: "secret", AccessExpiration: "1h"},
		Auth: config.AuthConfig{
			TreasurerEmail:    "bendahara@email.com",
			TreasurerPassword: "12345",
			BcryptCost:        bcrypt.MinCost,
			RenamePolicy:      employee.RenameOverwrite,
		},
	}
}

func TestNew_FileDriver(t *testing.T) {
	cfg := testConfig(t, config.DriverFile)

	// Act
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	// Assert
	resp, err := a.Auth.LoginTreasurer(context.Background(), auth.TreasurerLoginRequest{Email: "bendahara@email.com", Password: "12345"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = a.Employee.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{Name: "ani", Password: "pw", Position: "staff"})
	require.NoError(t, err)

	target, err := a.Backup.Snapshot(context.Background(), time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "backups/databaseghe1-2024-06-01.json", target)
}

func TestNew_SQLiteDriverPersists(t *testing.T) {
	cfg := testConfig(t, config.DriverSQLite)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	_, err = a.Employee.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{Name: "budi", Password: "pw", Position: "manager"})
	require.NoError(t, err)
	a.Close()

	// reopen against the same file
	reopened, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Employee.GetEmployee(context.Background(), "budi", "2024-06")
	require.NoError(t, err)
	assert.Equal(t, employee.PositionManager, got.Position)
}

func TestNew_InvalidRatesFile(t *testing.T) {
	cfg := testConfig(t, config.DriverFile)
	cfg.RatesFile = cfg.Store.Path + "/missing.yaml"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
