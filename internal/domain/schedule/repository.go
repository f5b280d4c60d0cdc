package schedule

import (
	"context"
	"time"
)

// ScheduleAssignmentRepository is the schedule store adapter. The resolver and
// the assignment engine are its only consumers; it exposes the employee's full
// history and bounded-range updates, never deletion.
type ScheduleAssignmentRepository interface {
	Create(ctx context.Context, assignment ScheduleAssignment) (ScheduleAssignment, error)
	GetByID(ctx context.Context, id string) (ScheduleAssignment, error)
	// GetByEmployeeID returns the employee's complete assignment history,
	// ordered by from_date then created_at.
	GetByEmployeeID(ctx context.Context, employeeID string) ([]ScheduleAssignment, error)
	// TruncateRange closes an assignment by moving its to_date. The assignment
	// remains in the history for audit.
	TruncateRange(ctx context.Context, id string, toDate time.Time) error
	// MarkSuperseded closes an assignment whose whole range was replaced.
	MarkSuperseded(ctx context.Context, id string, at time.Time) error
}
