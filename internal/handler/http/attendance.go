package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/attendance"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/handler/http/middleware"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetAttendanceReport(w http.ResponseWriter, r *http.Request)
	IngestPunches(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetAttendanceReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetAttendanceReport(w http.ResponseWriter, r *http.Request) {
	req := attendance.AttendanceReportRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		FromDate:   r.URL.Query().Get("from_date"),
		ToDate:     r.URL.Query().Get("to_date"),
	}

	result, err := h.attendanceService.BuildAttendanceRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// IngestPunches implements AttendanceHandler. The device is authenticated by
// the device key middleware; its identity comes from the request context.
func (h *attendanceHandlerImpl) IngestPunches(w http.ResponseWriter, r *http.Request) {
	d, ok := middleware.DeviceFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing device credentials")
		return
	}

	var req attendance.IngestPunchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.IngestPunches(r.Context(), d.ID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Punches ingested", result)
}
