package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/sistem-gaji/internal/domain/attendance"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/middleware"
	"github.com/cmlabs-hris/sistem-gaji/internal/handler/http/response"
)

type AttendanceHandler interface {
	RecordMyAttendance(w http.ResponseWriter, r *http.Request)
	GetMyHistory(w http.ResponseWriter, r *http.Request)
	GetOvertimeSummary(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// RecordMyAttendance records a day for the logged-in employee.
// A missing date means today.
func (h *attendanceHandlerImpl) RecordMyAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordMyAttendance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	session, _ := middleware.SessionFromContext(r.Context())
	req.EmployeeKey = session.EmployeeKey

	entry, err := h.attendanceService.RecordAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded successfully", entry)
}

func (h *attendanceHandlerImpl) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFromContext(r.Context())

	history, err := h.attendanceService.GetHistory(r.Context(), session.EmployeeKey)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

func (h *attendanceHandlerImpl) GetOvertimeSummary(w http.ResponseWriter, r *http.Request) {
	items, err := h.attendanceService.GetOvertimeSummary(r.Context(), monthParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}
