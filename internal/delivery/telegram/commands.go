package telegram

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/currency"
)

const historyLimit = 10

var (
	errLoginUsage = errors.New("format: /login <nama> <password>")
	errAbsenUsage = errors.New("format: /absen hadir|izin [YYYY-MM-DD] atau /absen lembur <jam> [YYYY-MM-DD]")
)

// parseLoginArgs treats the last argument as the password so names may contain spaces.
func parseLoginArgs(args []string) (name string, password string, err error) {
	if len(args) < 2 {
		return "", "", errLoginUsage
	}
	return strings.Join(args[:len(args)-1], " "), args[len(args)-1], nil
}

// parseAbsenArgs builds an attendance request without the employee key.
// Field validation is left to the request itself.
func parseAbsenArgs(args []string) (attendance.RecordAttendanceRequest, error) {
	var req attendance.RecordAttendanceRequest
	if len(args) == 0 {
		return req, errAbsenUsage
	}

	status, err := attendance.ParseStatus(args[0])
	if err != nil {
		return req, errAbsenUsage
	}
	req.Status = string(status)
	rest := args[1:]

	if status == attendance.StatusOvertime {
		if len(rest) == 0 {
			return req, errAbsenUsage
		}
		req.Overtime = attendance.OvertimeInput(rest[0])
		rest = rest[1:]
	}

	switch len(rest) {
	case 0:
	case 1:
		req.Date = rest[0]
	default:
		return req, errAbsenUsage
	}
	return req, nil
}

func formatSalary(resp payroll.MonthlySalaryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Gaji %s (%s) bulan %s\n", resp.Name, resp.Position, resp.Month)
	if len(resp.Items) == 0 {
		b.WriteString("Belum ada absensi bulan ini.\n")
	}
	for _, item := range resp.Items {
		line := fmt.Sprintf("%s %s", item.Date, item.Status)
		if item.Overtime > 0 {
			line += fmt.Sprintf(" (%d jam)", item.Overtime)
		}
		fmt.Fprintf(&b, "%s: %s\n", line, currency.Rupiah(item.Amount))
	}
	fmt.Fprintf(&b, "Total: %s", resp.TotalFormatted)
	return b.String()
}

func formatHistory(resp attendance.HistoryResponse) string {
	if len(resp.Entries) == 0 {
		return "Belum ada absensi."
	}

	entries := resp.Entries
	if len(entries) > historyLimit {
		entries = entries[:historyLimit]
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Riwayat absensi %s:", resp.Name)
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s %s", e.Date, e.Status)
		if e.Overtime > 0 {
			fmt.Fprintf(&b, " (%d jam)", e.Overtime)
		}
	}
	return b.String()
}
