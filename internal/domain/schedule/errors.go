package schedule

import "errors"

var (
	// Assignment request errors, rejected before any mutation
	ErrInvalidDateRange    = errors.New("from date must not be after to date")
	ErrNoEmployeesSelected = errors.New("at least one employee must be selected")
	ErrShiftRequired       = errors.New("shift is required unless auto shift is enabled")
	ErrShiftNotFound       = errors.New("assignment references unknown shift")

	// Per-employee errors, collected into the batch result
	ErrEmployeeNotFound = errors.New("employee not found")

	// Resolution
	ErrAssignmentNotFound = errors.New("schedule assignment not found")

	// Request data
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrEmployeeIDRequired = errors.New("employee ID is required")
	ErrInvalidRequestData = errors.New("invalid request data")
)
