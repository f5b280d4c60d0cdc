package schedule

import (
	"context"
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
)

type ScheduleService interface {
	// ResolveSchedule determines the applicable schedule state for an employee
	// on a date. Overlapping assignments are resolved by the created-at
	// tie-break and logged, never raised as errors.
	ResolveSchedule(ctx context.Context, employeeID string, date time.Time) (ScheduleStateResponse, error)

	// AssignSchedules applies a bulk shift assignment. Partial-failure
	// semantics: per-employee errors are collected in the result, successes
	// are kept.
	AssignSchedules(ctx context.Context, req AssignSchedulesRequest) (AssignmentBatchResult, error)

	// GetScheduleHistory returns the employee's full assignment history
	// ("schedule_all"), including truncated and superseded entries.
	GetScheduleHistory(ctx context.Context, employeeID string) ([]ScheduleAssignmentResponse, error)

	// ListEmployeesByScheduleState filters the employee directory by resolved
	// schedule state at the reference date, for the bulk-assignment pickers.
	ListEmployeesByScheduleState(ctx context.Context, filter EmployeePickerFilter, refDate time.Time) ([]employee.Employee, error)
}
