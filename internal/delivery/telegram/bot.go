package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"gopkg.in/telebot.v3"
)

const helpText = `Perintah:
/login <nama> <password>
/absen hadir|izin [YYYY-MM-DD]
/absen lembur <jam> [YYYY-MM-DD]
/gaji [YYYY-MM]
/riwayat
/logout`

// Handler is the employee front-end over Telegram.
type Handler struct {
	Bot        *telebot.Bot
	Auth       auth.AuthService
	Attendance attendance.AttendanceService
	Payroll    payroll.PayrollService
	Sessions   *Sessions
	// Timeout bounds each command's work
	Timeout time.Duration
}

func (h *Handler) Register() {
	if h.Sessions == nil {
		h.Sessions = NewSessions()
	}
	h.Bot.Handle("/start", h.handleHelp)
	h.Bot.Handle("/help", h.handleHelp)
	h.Bot.Handle("/login", h.handleLogin)
	h.Bot.Handle("/logout", h.handleLogout)
	h.Bot.Handle("/absen", h.requireLogin(h.handleAbsen))
	h.Bot.Handle("/gaji", h.requireLogin(h.handleGaji))
	h.Bot.Handle("/riwayat", h.requireLogin(h.handleRiwayat))
}

func (h *Handler) context() (context.Context, context.CancelFunc) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

type keyedHandler func(c telebot.Context, employeeKey string) error

func (h *Handler) requireLogin(next keyedHandler) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		key, ok := h.Sessions.EmployeeKey(c.Chat().ID)
		if !ok {
			return c.Send("Silakan /login terlebih dahulu.")
		}
		return next(c, key)
	}
}

func (h *Handler) handleHelp(c telebot.Context) error {
	return c.Send(helpText)
}

func (h *Handler) handleLogin(c telebot.Context) error {
	name, password, err := parseLoginArgs(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}
	// the message carries the password
	if err := c.Delete(); err != nil {
		slog.Debug("telegram: could not delete login message", "error", err)
	}

	ctx, cancel := h.context()
	defer cancel()
	key, err := h.Auth.AuthenticateEmployee(ctx, auth.EmployeeLoginRequest{Name: name, Password: password})
	if err != nil {
		return c.Send(userMessage(err))
	}

	h.Sessions.Bind(c.Chat().ID, key)
	slog.Info("telegram: employee logged in", "employee", key, "chat", c.Chat().ID)
	return c.Send(fmt.Sprintf("Halo %s, login berhasil.", employee.DisplayName(key)))
}

func (h *Handler) handleLogout(c telebot.Context) error {
	h.Sessions.Unbind(c.Chat().ID)
	return c.Send("Logout berhasil.")
}

func (h *Handler) handleAbsen(c telebot.Context, employeeKey string) error {
	req, err := parseAbsenArgs(c.Args())
	if err != nil {
		return c.Send(err.Error())
	}
	req.EmployeeKey = employeeKey

	ctx, cancel := h.context()
	defer cancel()
	entry, err := h.Attendance.RecordAttendance(ctx, req)
	if err != nil {
		return c.Send(userMessage(err))
	}

	msg := fmt.Sprintf("Absensi %s tercatat: %s", entry.Date, entry.Status)
	if entry.Overtime > 0 {
		msg += fmt.Sprintf(" (%d jam lembur)", entry.Overtime)
	}
	return c.Send(msg)
}

func (h *Handler) handleGaji(c telebot.Context, employeeKey string) error {
	month := validator.CurrentMonth(time.Now())
	if args := c.Args(); len(args) > 0 {
		month = args[0]
	}

	ctx, cancel := h.context()
	defer cancel()
	resp, err := h.Payroll.GetMonthlySalary(ctx, employeeKey, month)
	if err != nil {
		return c.Send(userMessage(err))
	}
	return c.Send(formatSalary(resp))
}

func (h *Handler) handleRiwayat(c telebot.Context, employeeKey string) error {
	ctx, cancel := h.context()
	defer cancel()
	resp, err := h.Attendance.GetHistory(ctx, employeeKey)
	if err != nil {
		return c.Send(userMessage(err))
	}
	return c.Send(formatHistory(resp))
}

// userMessage turns a service error into a chat reply.
func userMessage(err error) string {
	var vErrs validator.ValidationErrors
	switch {
	case errors.As(err, &vErrs):
		return "Input tidak valid: " + vErrs.Error()
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Nama atau password salah."
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return "Karyawan tidak ditemukan."
	default:
		slog.Error("telegram: command failed", "error", err)
		return "Terjadi kesalahan, coba lagi nanti."
	}
}
