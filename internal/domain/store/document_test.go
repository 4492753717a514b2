package store

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_EmptyInputIsNewDocument(t *testing.T) {
	for _, in := range []string{"", "   ", "{}"} {
		doc, err := Decode([]byte(in))
		require.NoError(t, err)
		assert.Equal(t, SchemaVersion, doc.SchemaVersion)
		assert.Zero(t, doc.Employees.Len())
		assert.NotNil(t, doc.Income)
	}
}

func TestDecode_LegacyDailyDocument(t *testing.T) {
	raw := `{
		"karyawan": {
			"ani": {"password": "x", "posisi": "Staff", "absen": {
				"2024-06-02": {"status": "hadir+lembur", "overtime": "3"},
				"2024-06-01": {"status": "hadir", "overtime": 0}
			}},
			"budi": {"password": "y", "posisi": "spv", "absen": {}}
		},
		"pemasukan": {"2024-06": 15000000},
		"rates": {"normal": {"spv": 100000}, "overtime": {}}
	}`

	// Act
	doc, err := Decode([]byte(raw))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"ani", "budi"}, doc.Employees.Keys())

	ani, ok := doc.Employees.Get("ani")
	require.True(t, ok)
	assert.Equal(t, employee.PositionStaff, ani.Position)
	assert.Equal(t, []string{"2024-06-02", "2024-06-01"}, ani.Attendance.Keys())
	rec, _ := ani.Attendance.Get("2024-06-02")
	assert.Equal(t, attendance.Record{Status: attendance.StatusOvertime, Overtime: 3}, rec)

	budi, _ := doc.Employees.Get("budi")
	assert.Equal(t, employee.PositionSupervisor, budi.Position)
	assert.Equal(t, int64(100000), doc.Rates.NormalRate(employee.PositionSupervisor))
	assert.Equal(t, int64(15000000), doc.Income["2024-06"])
}

func TestDecode_LegacyWeeklyFileIsImported(t *testing.T) {
	raw := `{
		"citra": {"posisi": "staff", "gaji": 8000000, "weeks": [
			{"days": 5, "overtime": 0}, {"days": 5, "overtime": 0},
			{"days": 5, "overtime": 0}, {"days": 5, "overtime": 0}
		]},
		"andi": {"posisi": "intern", "gaji": 0, "weeks": [
			{"days": 0, "overtime": 0}, {"days": 0, "overtime": 0},
			{"days": 0, "overtime": 0}, {"days": 0, "overtime": 0}
		]}
	}`

	doc, err := Decode([]byte(raw))

	require.NoError(t, err)
	assert.Zero(t, doc.Employees.Len())
	assert.Equal(t, []string{"citra", "andi"}, doc.Weekly.Keys())
	citra, _ := doc.Weekly.Get("citra")
	assert.Equal(t, int64(8000000), citra.Salary)
	assert.Equal(t, 5, citra.Weeks[3].Days)
}

func TestDecode_WeeklySalaryIsRecomputed(t *testing.T) {
	raw := `{"schema_version": 2, "karyawan": {}, "mingguan": {
		"citra": {"posisi": "staff", "gaji": 1, "weeks": [
			{"days": 5, "overtime": 2}, {"days": 5, "overtime": 0},
			{"days": 5, "overtime": 0}, {"days": 4, "overtime": 0}
		]}
	}}`

	// Act
	doc, err := Decode([]byte(raw))

	// Assert
	require.NoError(t, err)
	citra, ok := doc.Weekly.Get("citra")
	require.True(t, ok)
	// 19 days x 8h x 50 000 + 2h x 40 000
	assert.Equal(t, int64(7680000), citra.Salary)
}

func TestDecode_WeeklyMustHoldFourValidWeeks(t *testing.T) {
	week := `{"days": 5, "overtime": 0}`
	weeks := func(n int) string {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = week
		}
		return "[" + strings.Join(parts, ",") + "]"
	}

	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"legacy three weeks", `{"citra": {"posisi": "staff", "gaji": 6000000, "weeks": ` + weeks(3) + `}}`, ErrUnknownSchema},
		{"legacy empty weeks", `{"citra": {"posisi": "staff", "gaji": 0, "weeks": []}}`, ErrUnknownSchema},
		{"legacy eight days", `{"citra": {"posisi": "staff", "gaji": 0, "weeks": [{"days": 8, "overtime": 0},` + week + `,` + week + `,` + week + `]}}`, ErrUnknownSchema},
		{"versioned six weeks", `{"schema_version": 2, "karyawan": {}, "mingguan": {"citra": {"posisi": "staff", "gaji": 1, "weeks": ` + weeks(6) + `}}}`, ErrCorruptDocument},
		{"versioned negative overtime", `{"schema_version": 2, "karyawan": {}, "mingguan": {"citra": {"posisi": "staff", "gaji": 1, "weeks": [{"days": 5, "overtime": -1},` + week + `,` + week + `,` + week + `]}}}`, ErrCorruptDocument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			_, err := Decode([]byte(tc.raw))

			// Assert
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecode_UnknownShapes(t *testing.T) {
	cases := map[string]string{
		"future version": `{"schema_version": 9, "karyawan": {}}`,
		"foreign object": `{"users": [1, 2, 3]}`,
		"no weeks":       `{"ani": {"posisi": "staff"}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(raw))
			assert.ErrorIs(t, err, ErrUnknownSchema)
		})
	}
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := Decode([]byte(`{"karyawan": `))
	assert.ErrorIs(t, err, ErrCorruptDocument)

	_, err = Decode([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

func TestEncode_RoundTripKeepsOrder(t *testing.T) {
	doc := NewDocument()
	doc.Employees.Set("zaki", &employee.Employee{Position: employee.PositionManager})
	ani := &employee.Employee{Password: "hash", Position: employee.PositionStaff}
	ani.Attendance.Set("2024-06-03", attendance.Record{Status: attendance.StatusLeave})
	ani.Attendance.Set("2024-06-01", attendance.Record{Status: attendance.StatusPresent})
	doc.Employees.Set("ani", ani)
	doc.Income["2024-06"] = 1000

	data, err := Encode(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \"schema_version\": 2,"))
	assert.True(t, json.Valid(data))

	again, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"zaki", "ani"}, again.Employees.Keys())
	got, _ := again.Employees.Get("ani")
	assert.Equal(t, []string{"2024-06-03", "2024-06-01"}, got.Attendance.Keys())
	assert.Equal(t, int64(1000), again.Income["2024-06"])
}
