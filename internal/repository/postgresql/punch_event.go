package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/attendance"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/database"
)

type punchEventRepositoryImpl struct {
	db *database.DB
}

func NewPunchEventRepository(db *database.DB) attendance.PunchEventRepository {
	return &punchEventRepositoryImpl{db: db}
}

// BulkInsert implements attendance.PunchEventRepository. Duplicate events from
// device re-sync are dropped on the unique (employee_id, device_id, ts) key.
func (r *punchEventRepositoryImpl) BulkInsert(ctx context.Context, events []attendance.PunchEvent) (int, error) {
	q := GetQuerier(ctx, r.db)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO punch_events (id, employee_id, device_id, ts, device_function)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, device_id, ts) DO NOTHING
	`
	for _, e := range events {
		batch.Queue(query, e.ID, e.EmployeeID, e.DeviceID, e.Timestamp, e.DeviceFunction)
	}

	results := q.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range events {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("failed to insert punch event: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// GetByEmployeeAndRange implements attendance.PunchEventRepository.
func (r *punchEventRepositoryImpl) GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.PunchEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, device_id, ts, device_function, created_at
		FROM punch_events
		WHERE employee_id = $1 AND ts >= $2 AND ts < $3
		ORDER BY ts
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get punch events for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var events []attendance.PunchEvent
	for rows.Next() {
		var e attendance.PunchEvent
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.DeviceID, &e.Timestamp, &e.DeviceFunction, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan punch event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
