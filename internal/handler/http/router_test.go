package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/sistem-gaji/internal/app"
	"github.com/cmlabs-hris/sistem-gaji/internal/config"
	"github.com/cmlabs-hris/sistem-gaji/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	cfg := &config.Config{
		App:   config.AppConfig{Env: "test"},
		Store: config.StoreConfig{Driver: config.DriverFile, Path: t.TempDir(), Filename: "databaseghe1.json"},
		JWT:   config.JWTConfig{Secret: "test-secret-key-for-jwt", AccessExpiration: "1h"},
		Auth: config.AuthConfig{
			TreasurerEmail:    "bendahara@email.com",
			TreasurerPassword: "12345",
			BcryptCost:        bcrypt.MinCost,
			RenamePolicy:      employee.RenameOverwrite,
		},
	}
	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	router := NewRouter(a.JWT, a.Auth, Handlers{
		Auth:       NewAuthHandler(a.Auth),
		Employee:   NewEmployeeHandler(a.Employee),
		Payroll:    NewPayrollHandler(a.Payroll),
		Attendance: NewAttendanceHandler(a.Attendance),
		Income:     NewIncomeHandler(a.Income),
		Dashboard:  NewDashboardHandler(a.Dashboard),
		Report:     NewReportHandler(a.Report),
		Weekly:     NewWeeklyHandler(a.Weekly),
	}, RouterOptions{Env: "test", LogLevel: slog.LevelError})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.True(t, resp["success"].(bool), "response: %v", resp)
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func (s *testServer) login(path string, body interface{}) string {
	s.t.Helper()
	w := s.do(http.MethodPost, path, "", body)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decodeData(s.t, w)["access_token"].(string)
}

func TestRouter_TreasurerAndEmployeeFlow(t *testing.T) {
	s := newTestServer(t)
	treasurer := s.login("/api/v1/auth/treasurer/login", map[string]string{"email": "bendahara@email.com", "password": "12345"})

	// treasurer creates an employee
	w := s.do(http.MethodPost, "/api/v1/employees", treasurer, map[string]string{"name": "Ani", "password": "rahasia", "position": "staff"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/v1/employees", treasurer, map[string]string{"name": "ani", "password": "x", "position": "staff"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// employee records attendance
	employeeToken := s.login("/api/v1/auth/employee/login", map[string]string{"name": "ani", "password": "rahasia"})
	for _, body := range []map[string]interface{}{
		{"date": "2024-06-01", "status": "hadir"},
		{"date": "2024-06-02", "status": "hadir+lembur", "overtime": 3},
		{"date": "2024-06-03", "status": "izin (sakit/cuti)"},
	} {
		w = s.do(http.MethodPost, "/api/v1/me/attendance", employeeToken, body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/v1/me/attendance", employeeToken, map[string]string{"date": "2024-06-04", "status": "hadir+lembur", "overtime": "tiga"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Act
	w = s.do(http.MethodGet, "/api/v1/me/payroll?month=2024-06", employeeToken, nil)

	// Assert
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, float64(920000), data["total"])
	assert.Equal(t, "Rp 920,000", data["total_formatted"])
	assert.Len(t, data["items"], 3)

	w = s.do(http.MethodGet, "/api/v1/employees/ani/payroll?month=2024-06", treasurer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(920000), decodeData(t, w)["total"])
}

func TestRouter_RoleEnforcement(t *testing.T) {
	s := newTestServer(t)
	treasurer := s.login("/api/v1/auth/treasurer/login", map[string]string{"email": "bendahara@email.com", "password": "12345"})
	w := s.do(http.MethodPost, "/api/v1/auth/employee/register", "", map[string]string{"name": "budi", "password": "pw", "position": "intern"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	employeeToken := decodeData(t, w)["access_token"].(string)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/employees", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/employees", employeeToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/me/payroll", treasurer, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/summary", "", nil).Code)
}

func TestRouter_RegisterReturnsCreated(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/auth/employee/register", "", map[string]string{"name": "citra", "password": "pw", "position": "spv"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "citra", decodeData(t, w)["employee_key"])
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	treasurer := s.login("/api/v1/auth/treasurer/login", map[string]string{"email": "bendahara@email.com", "password": "12345"})

	w := s.do(http.MethodPost, "/api/v1/auth/logout", treasurer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/rates", treasurer, nil).Code)
}

func TestRouter_DeletedEmployeeTokenDoesNotCarryOver(t *testing.T) {
	s := newTestServer(t)
	treasurer := s.login("/api/v1/auth/treasurer/login", map[string]string{"email": "bendahara@email.com", "password": "12345"})
	register := map[string]string{"name": "dewi", "password": "pw-lama", "position": "staff"}

	w := s.do(http.MethodPost, "/api/v1/auth/employee/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	oldToken := decodeData(t, w)["access_token"].(string)

	w = s.do(http.MethodDelete, "/api/v1/employees/dewi", treasurer, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/me/payroll", oldToken, nil).Code)

	register["password"] = "pw-baru"
	w = s.do(http.MethodPost, "/api/v1/auth/employee/register", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	newToken := decodeData(t, w)["access_token"].(string)

	// Act
	oldResp := s.do(http.MethodGet, "/api/v1/me/payroll", oldToken, nil)
	newResp := s.do(http.MethodGet, "/api/v1/me/payroll", newToken, nil)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, oldResp.Code)
	assert.Equal(t, http.StatusOK, newResp.Code, newResp.Body.String())
}

func TestRouter_RatesAndReports(t *testing.T) {
	s := newTestServer(t)
	treasurer := s.login("/api/v1/auth/treasurer/login", map[string]string{"email": "bendahara@email.com", "password": "12345"})

	// partial table is rejected as a whole
	w := s.do(http.MethodPut, "/api/v1/rates", treasurer, map[string]interface{}{
		"normal": map[string]int64{"staff": 60000},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(http.MethodPut, "/api/v1/income/2024-06", treasurer, map[string]int64{"amount": 15000000})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/dashboard?month=2024-06", treasurer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(15000000), decodeData(t, w)["income"])

	w = s.do(http.MethodGet, "/api/v1/reports/payroll.csv?month=2024-06", treasurer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gaji-2024-06.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), "Nama,Posisi,Gaji"))
}

func TestRouter_WeeklyPayroll(t *testing.T) {
	s := newTestServer(t)
	treasurer := s.login("/api/v1/auth/treasurer/login", map[string]string{"email": "bendahara@email.com", "password": "12345"})

	weeks := []map[string]int{{"days": 5}, {"days": 5}, {"days": 5}, {"days": 5}}
	w := s.do(http.MethodPut, "/api/v1/weekly/dewi", treasurer, map[string]interface{}{"position": "staff", "weeks": weeks})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(8000000), decodeData(t, w)["salary"])

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/v1/weekly/dewi", treasurer, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/weekly/dewi", treasurer, nil).Code)
}
