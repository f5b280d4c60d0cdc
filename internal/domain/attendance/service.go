package attendance

import (
	"context"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
)

type AttendanceService interface {
	// BuildAttendanceRecords derives one record per calendar day in the
	// inclusive range, resolving the schedule per day and localizing punches
	// to the employee's branch timezone. Records are recomputed, not stored.
	BuildAttendanceRecords(ctx context.Context, req AttendanceReportRequest) ([]DayAttendanceRecordResponse, error)

	// IngestPunches maps device rows to employees and appends the punch log.
	// Malformed rows are skipped with a warning each.
	IngestPunches(ctx context.Context, deviceID string, req IngestPunchesRequest) (IngestPunchesResponse, error)
}

// AutoShiftResolver picks the concrete shift for an auto-shift day from the
// punch pattern. The default implementation is a nearest-window heuristic;
// deployments can plug their own.
type AutoShiftResolver interface {
	ResolveShift(punches []PunchEvent, candidates []shift.ShiftDefinition) *shift.ShiftDefinition
}
