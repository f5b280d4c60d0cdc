package response

import (
	"errors"
	"net/http"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/attendance"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/device"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/schedule"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeNotMapped):
		NotFound(w, "No employee mapped to this device user")
	case errors.Is(err, employee.ErrBranchTimezoneUnset):
		BadRequest(w, "Employee branch has no timezone configured", nil)

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidShiftType):
		BadRequest(w, "Invalid shift type", nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Schedule assignment not found")
	case errors.Is(err, schedule.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, schedule.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, schedule.ErrNoEmployeesSelected):
		BadRequest(w, "No employees selected", nil)
	case errors.Is(err, schedule.ErrShiftRequired):
		BadRequest(w, "A shift is required unless the assignment is auto-shift", nil)
	case errors.Is(err, schedule.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, schedule.ErrInvalidDateFormat):
		BadRequest(w, "Dates must be in YYYY-MM-DD format", nil)
	case errors.Is(err, schedule.ErrEmployeeIDRequired):
		BadRequest(w, "employee_id is required", nil)
	case errors.Is(err, schedule.ErrInvalidRequestData):
		BadRequest(w, "Invalid request data", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)
	case errors.Is(err, attendance.ErrDateOutOfRange):
		BadRequest(w, "Requested range exceeds the report limit", nil)
	case errors.Is(err, attendance.ErrMalformedPunchEvent):
		BadRequest(w, "Malformed punch event", nil)

	// Device domain errors
	case errors.Is(err, device.ErrDeviceNotFound):
		NotFound(w, "Device not found")
	case errors.Is(err, device.ErrDeviceDisabled):
		Forbidden(w, "Device is disabled")
	case errors.Is(err, device.ErrInvalidDeviceKey):
		Unauthorized(w, "Invalid device key")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
