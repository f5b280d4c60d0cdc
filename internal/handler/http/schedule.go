package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/schedule"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	AssignSchedules(w http.ResponseWriter, r *http.Request)
	ResolveSchedule(w http.ResponseWriter, r *http.Request)
	GetScheduleHistory(w http.ResponseWriter, r *http.Request)
	ListEmployeesByScheduleState(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// AssignSchedules implements ScheduleHandler.
func (h *scheduleHandlerImpl) AssignSchedules(w http.ResponseWriter, r *http.Request) {
	var req schedule.AssignSchedulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.HandleError(w, schedule.ErrInvalidRequestData)
		return
	}

	result, err := h.scheduleService.AssignSchedules(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if len(result.Failures) > 0 {
		response.MultiStatus(w, "Schedules assigned with failures", result)
		return
	}
	response.Created(w, "Schedules assigned successfully", result)
}

// ResolveSchedule implements ScheduleHandler.
func (h *scheduleHandlerImpl) ResolveSchedule(w http.ResponseWriter, r *http.Request) {
	req := schedule.ResolveScheduleRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Date:       r.URL.Query().Get("date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date := time.Now()
	if req.Date != "" {
		date, _ = time.Parse("2006-01-02", req.Date)
	}

	result, err := h.scheduleService.ResolveSchedule(r.Context(), req.EmployeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetScheduleHistory implements ScheduleHandler.
func (h *scheduleHandlerImpl) GetScheduleHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.HandleError(w, schedule.ErrEmployeeIDRequired)
		return
	}

	result, err := h.scheduleService.GetScheduleHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEmployeesByScheduleState implements ScheduleHandler.
func (h *scheduleHandlerImpl) ListEmployeesByScheduleState(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := schedule.EmployeePickerFilter{
		Mode: query.Get("schedule_state"),
	}
	if branchID := query.Get("branch_id"); branchID != "" {
		filter.BranchID = &branchID
	}
	if departmentID := query.Get("department_id"); departmentID != "" {
		filter.DepartmentID = &departmentID
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	refDate := time.Now()
	if d := query.Get("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			response.HandleError(w, schedule.ErrInvalidDateFormat)
			return
		}
		refDate = parsed
	}

	employees, err := h.scheduleService.ListEmployeesByScheduleState(r.Context(), filter, refDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, employee.MapEmployeeToResponse(e))
	}
	response.Success(w, resp)
}
