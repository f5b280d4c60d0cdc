package attendance

import (
	"context"
	"time"
)

// PunchEventRepository is the read side of the device-log collaborator plus the
// append-only ingest path. Punch events are immutable once stored.
type PunchEventRepository interface {
	BulkInsert(ctx context.Context, events []PunchEvent) (int, error)
	// GetByEmployeeAndRange returns the employee's punches with timestamps in
	// [from, to), ordered by timestamp.
	GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]PunchEvent, error)
}
