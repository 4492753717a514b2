package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/app"
	"github.com/cmlabs-hris/sistem-gaji/internal/config"
	appHTTP "github.com/cmlabs-hris/sistem-gaji/internal/handler/http"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/cron"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("Failed to start application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	scheduler := cron.NewScheduler()
	if cfg.Store.BackupInterval > 0 {
		err := scheduler.AddJob(cron.Job{
			Name:       "snapshot",
			Interval:   cfg.Store.BackupInterval,
			RunAtStart: true,
			Fn: func(ctx context.Context) error {
				_, err := application.Backup.Snapshot(ctx, time.Now())
				return err
			},
		})
		if err != nil {
			slog.Error("Failed to register snapshot job", "error", err)
			os.Exit(1)
		}
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(application.JWT, application.Auth, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(application.Auth),
		Employee:   appHTTP.NewEmployeeHandler(application.Employee),
		Payroll:    appHTTP.NewPayrollHandler(application.Payroll),
		Attendance: appHTTP.NewAttendanceHandler(application.Attendance),
		Income:     appHTTP.NewIncomeHandler(application.Income),
		Dashboard:  appHTTP.NewDashboardHandler(application.Dashboard),
		Report:     appHTTP.NewReportHandler(application.Report),
		Weekly:     appHTTP.NewWeeklyHandler(application.Weekly),
	}, appHTTP.RouterOptions{
		AllowedOrigins: cfg.App.CORSOrigins,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.Store.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
