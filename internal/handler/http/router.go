package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/middleware"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Payroll    PayrollHandler
	Attendance AttendanceHandler
	Income     IncomeHandler
	Dashboard  DashboardHandler
	Report     ReportHandler
	Weekly     WeeklyHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	LogLevel       slog.Level
}

func NewRouter(JWTService jwt.Service, sessions middleware.SessionValidator, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "sistem-gaji"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/summary", h.Dashboard.GetSummary)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/treasurer/login", h.Auth.LoginTreasurer)
			r.Post("/employee/login", h.Auth.LoginEmployee)
			r.Post("/employee/register", h.Auth.RegisterEmployee)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService, sessions))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/me", func(r chi.Router) {
				r.Use(middleware.RequireEmployee)
				r.Get("/payroll", h.Payroll.GetMyPayroll)
				r.Get("/performance", h.Payroll.GetMyPerformance)
				r.Get("/attendance", h.Attendance.GetMyHistory)
				r.Post("/attendance", h.Attendance.RecordMyAttendance)
			})

			// Treasurer only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireTreasurer)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.ListEmployees)
					r.Post("/", h.Employee.CreateEmployee)
					r.Route("/{key}", func(r chi.Router) {
						r.Get("/", h.Employee.GetEmployee)
						r.Put("/", h.Employee.UpdateEmployee)
						r.Delete("/", h.Employee.DeleteEmployee)
						r.Get("/payroll", h.Payroll.GetEmployeePayroll)
						r.Get("/performance", h.Payroll.GetEmployeePerformance)
					})
				})

				r.Get("/rates", h.Payroll.GetRates)
				r.Put("/rates", h.Payroll.UpdateRates)

				r.Get("/income/{month}", h.Income.GetIncome)
				r.Put("/income/{month}", h.Income.SetIncome)

				r.Get("/attendance/overtime", h.Attendance.GetOvertimeSummary)
				r.Get("/dashboard", h.Dashboard.GetEvaluation)

				r.Get("/reports/payroll.csv", h.Report.GetPayrollCSV)
				r.Get("/reports/payroll.xlsx", h.Report.GetPayrollXLSX)

				r.Route("/weekly", func(r chi.Router) {
					r.Get("/", h.Weekly.ListWeekly)
					r.Get("/{key}", h.Weekly.GetWeekly)
					r.Put("/{key}", h.Weekly.SaveWeekly)
					r.Delete("/{key}", h.Weekly.DeleteWeekly)
				})
			})
		})
	})
	return r
}
