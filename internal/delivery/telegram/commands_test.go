package telegram

import (
	"errors"
	"strings"
	"testing"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/auth"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/payroll"
	"github.com/cmlabs-hris/sistem-gaji/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoginArgs(t *testing.T) {
	name, password, err := parseLoginArgs([]string{"Siti", "Nur", "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, "Siti Nur", name)
	assert.Equal(t, "rahasia", password)

	_, _, err = parseLoginArgs([]string{"ani"})
	assert.ErrorIs(t, err, errLoginUsage)
}

func TestParseAbsenArgs(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want attendance.RecordAttendanceRequest
	}{
		{"present today", []string{"hadir"}, attendance.RecordAttendanceRequest{Status: "hadir"}},
		{"present on date", []string{"Hadir", "2024-06-01"}, attendance.RecordAttendanceRequest{Status: "hadir", Date: "2024-06-01"}},
		{"overtime", []string{"lembur", "3"}, attendance.RecordAttendanceRequest{Status: "hadir+lembur", Overtime: "3"}},
		{"overtime on date", []string{"lembur", "2", "2024-06-02"}, attendance.RecordAttendanceRequest{Status: "hadir+lembur", Overtime: "2", Date: "2024-06-02"}},
		{"leave", []string{"izin"}, attendance.RecordAttendanceRequest{Status: "izin"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := parseAbsenArgs(c.args)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParseAbsenArgs_Usage(t *testing.T) {
	for _, args := range [][]string{nil, {"alpa"}, {"lembur"}, {"hadir", "2024-06-01", "extra"}} {
		_, err := parseAbsenArgs(args)
		assert.ErrorIs(t, err, errAbsenUsage, "%v", args)
	}
}

func TestFormatSalary(t *testing.T) {
	resp := payroll.MonthlySalaryResponse{
		Name:           "Ani",
		Position:       employee.PositionStaff,
		Month:          "2024-06",
		Total:          920000,
		TotalFormatted: "Rp 920,000",
		Items: []payroll.LineItem{
			{Date: "2024-06-01", Status: attendance.StatusPresent, Amount: 400000},
			{Date: "2024-06-02", Status: attendance.StatusOvertime, Overtime: 3, Amount: 520000},
			{Date: "2024-06-03", Status: attendance.StatusLeave},
		},
	}

	want := "Gaji Ani (staff) bulan 2024-06\n" +
		"2024-06-01 hadir: Rp 400,000\n" +
		"2024-06-02 hadir+lembur (3 jam): Rp 520,000\n" +
		"2024-06-03 izin: Rp 0\n" +
		"Total: Rp 920,000"
	assert.Equal(t, want, formatSalary(resp))
}

func TestFormatHistory(t *testing.T) {
	assert.Equal(t, "Belum ada absensi.", formatHistory(attendance.HistoryResponse{}))

	resp := attendance.HistoryResponse{Name: "Ani"}
	for i := 0; i < historyLimit+5; i++ {
		resp.Entries = append(resp.Entries, attendance.AttendanceEntry{Date: "2024-06-01", Status: attendance.StatusPresent})
	}
	assert.Len(t, strings.Split(formatHistory(resp), "\n"), historyLimit+1)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Nama atau password salah.", userMessage(auth.ErrInvalidCredentials))
	assert.Equal(t, "Karyawan tidak ditemukan.", userMessage(employee.ErrEmployeeNotFound))
	assert.Contains(t, userMessage(validator.ValidationErrors{{Field: "overtime", Message: "must be a number"}}), "overtime")
	assert.Equal(t, "Terjadi kesalahan, coba lagi nanti.", userMessage(errors.New("boom")))
}

func TestSessions(t *testing.T) {
	s := NewSessions()
	s.Bind(42, "ani")

	key, ok := s.EmployeeKey(42)
	assert.True(t, ok)
	assert.Equal(t, "ani", key)

	s.Unbind(42)
	_, ok = s.EmployeeKey(42)
	assert.False(t, ok)
}
