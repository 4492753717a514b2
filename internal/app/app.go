package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/sistem-gaji/internal/config"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/dashboard"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/income"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/report"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/store"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/database"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/jwt"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/storage"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository/jsonfile"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository/postgresql"
	"github.com/cmlabs-hris/sistem-gaji/internal/repository/sqldb"
	attendanceService "github.com/cmlabs-hris/sistem-gaji/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/sistem-gaji/internal/service/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/service/backup"
	dashboardService "github.com/cmlabs-hris/sistem-gaji/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/sistem-gaji/internal/service/employee"
	incomeService "github.com/cmlabs-hris/sistem-gaji/internal/service/income"
	payrollService "github.com/cmlabs-hris/sistem-gaji/internal/service/payroll"
	reportService "github.com/cmlabs-hris/sistem-gaji/internal/service/report"
	weeklyService "github.com/cmlabs-hris/sistem-gaji/internal/service/weekly"
)

// App holds every wired service shared by the HTTP API and the bot.
type App struct {
	Config     *config.Config
	Store      *repository.Store
	JWT        *jwt.JWTService
	Auth       auth.AuthService
	Employee   employee.EmployeeService
	Payroll    payroll.PayrollService
	Weekly     payroll.WeeklyService
	Attendance attendance.AttendanceService
	Income     income.IncomeService
	Dashboard  dashboard.DashboardService
	Report     report.ReportService
	Backup     backup.BackupService

	closers []func()
}

// Close releases database handles.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	files, err := storage.NewLocalStorage(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}

	repo, err := a.openRepository(ctx, files)
	if err != nil {
		a.Close()
		return nil, err
	}

	defaultRates := payroll.DefaultRateTable()
	if cfg.RatesFile != "" {
		defaultRates, err = config.LoadRates(cfg.RatesFile)
		if err != nil {
			a.Close()
			return nil, err
		}
	}
	a.Store = repository.NewStore(repo, defaultRates)

	a.JWT, err = jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to initialize jwt: %w", err)
	}

	bcryptVerifier := serviceAuth.NewBcryptVerifier(cfg.Auth.BcryptCost)
	var verifier auth.CredentialVerifier = bcryptVerifier
	if cfg.Auth.AllowPlaintext {
		slog.Warn("AUTH_ALLOW_PLAINTEXT is enabled, plain text passwords are accepted and rehashed on login")
		verifier = serviceAuth.NewPlaintextVerifier(bcryptVerifier)
	}

	treasurerHash := cfg.Auth.TreasurerPasswordHash
	if treasurerHash == "" {
		slog.Warn("TREASURER_PASSWORD_HASH is not set, hashing TREASURER_PASSWORD at boot")
		treasurerHash, err = bcryptVerifier.Hash(cfg.Auth.TreasurerPassword)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to hash treasurer password: %w", err)
		}
	}

	a.Employee = employeeService.NewEmployeeService(a.Store, verifier, cfg.Auth.RenamePolicy)
	a.Auth = serviceAuth.NewAuthService(a.Store, verifier, a.JWT, a.Employee, serviceAuth.TreasurerCredential{
		Email:        cfg.Auth.TreasurerEmail,
		PasswordHash: treasurerHash,
	})
	a.Payroll = payrollService.NewPayrollService(a.Store)
	a.Weekly = weeklyService.NewWeeklyService(a.Store)
	a.Attendance = attendanceService.NewAttendanceService(a.Store)
	a.Income = incomeService.NewIncomeService(a.Store)
	a.Dashboard = dashboardService.NewDashboardService(a.Store)
	a.Report = reportService.NewReportService(a.Store)
	a.Backup = backup.NewBackupService(a.Store, files, strings.TrimSuffix(cfg.Store.Filename, filepath.Ext(cfg.Store.Filename)))

	return a, nil
}

func (a *App) openRepository(ctx context.Context, files storage.FileStorage) (store.Repository, error) {
	cfg := a.Config
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		if err := postgresql.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		return postgresql.NewDocumentRepository(db), nil

	case config.DriverSQLite, config.DriverMySQL:
		var (
			db  *database.SQLDB
			err error
		)
		if cfg.Store.Driver == config.DriverSQLite {
			if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0o755); err != nil {
				return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
			db, err = database.NewSQLiteDB(ctx, cfg.Store.SQLitePath)
		} else {
			db, err = database.NewMySQLDB(ctx, cfg.Store.MySQLDSN)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", cfg.Store.Driver, err)
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		if err := sqldb.Migrate(ctx, db); err != nil {
			return nil, fmt.Errorf("failed to migrate %s: %w", cfg.Store.Driver, err)
		}
		return sqldb.NewRepository(db), nil

	default:
		return jsonfile.NewRepository(files, cfg.Store.Filename), nil
	}
}
