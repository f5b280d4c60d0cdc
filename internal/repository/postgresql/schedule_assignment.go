package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/schedule"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/database"
)

type scheduleAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewScheduleAssignmentRepository(db *database.DB) schedule.ScheduleAssignmentRepository {
	return &scheduleAssignmentRepositoryImpl{db: db}
}

const assignmentColumns = `id, employee_id, shift_id, shift_type_id, from_date, to_date,
	is_overtime_eligible, is_auto_shift, superseded_at, created_at, updated_at`

func scanAssignment(row pgx.Row) (schedule.ScheduleAssignment, error) {
	var a schedule.ScheduleAssignment
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.ShiftID, &a.ShiftTypeID, &a.FromDate, &a.ToDate,
		&a.IsOvertimeEligible, &a.IsAutoShift, &a.SupersededAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// Create implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepositoryImpl) Create(ctx context.Context, assignment schedule.ScheduleAssignment) (schedule.ScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedule_assignments (
			id, employee_id, shift_id, shift_type_id, from_date, to_date,
			is_overtime_eligible, is_auto_shift
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + assignmentColumns

	created, err := scanAssignment(q.QueryRow(ctx, query,
		assignment.ID, assignment.EmployeeID, assignment.ShiftID, assignment.ShiftTypeID,
		assignment.FromDate, assignment.ToDate,
		assignment.IsOvertimeEligible, assignment.IsAutoShift,
	))
	if err != nil {
		return schedule.ScheduleAssignment{}, fmt.Errorf("failed to create schedule assignment: %w", err)
	}

	return created, nil
}

// GetByID implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.ScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM schedule_assignments
		WHERE id = $1
	`

	a, err := scanAssignment(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleAssignment{}, schedule.ErrAssignmentNotFound
		}
		return schedule.ScheduleAssignment{}, fmt.Errorf("failed to get assignment with id %s: %w", id, err)
	}

	return a, nil
}

// GetByEmployeeID implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) ([]schedule.ScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + assignmentColumns + `
		FROM schedule_assignments
		WHERE employee_id = $1
		ORDER BY from_date, created_at
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments for employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	var assignments []schedule.ScheduleAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// TruncateRange implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepositoryImpl) TruncateRange(ctx context.Context, id string, toDate time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedule_assignments
		SET to_date = $1, updated_at = NOW()
		WHERE id = $2 AND superseded_at IS NULL
	`

	tag, err := q.Exec(ctx, query, toDate, id)
	if err != nil {
		return fmt.Errorf("failed to truncate assignment %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrAssignmentNotFound
	}

	return nil
}

// MarkSuperseded implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepositoryImpl) MarkSuperseded(ctx context.Context, id string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedule_assignments
		SET superseded_at = $1, updated_at = NOW()
		WHERE id = $2 AND superseded_at IS NULL
	`

	tag, err := q.Exec(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("failed to mark assignment %s superseded: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrAssignmentNotFound
	}

	return nil
}
