package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, name, shift_type_id, on_duty_time, off_duty_time, is_auto_shift,
	half_day_threshold_hours, half_day_working_hours, created_at, updated_at`

func scanShift(row pgx.Row) (shift.ShiftDefinition, error) {
	var s shift.ShiftDefinition
	err := row.Scan(
		&s.ID, &s.Name, &s.ShiftTypeID, &s.OnDutyTime, &s.OffDutyTime, &s.IsAutoShift,
		&s.HalfDayThresholdHours, &s.HalfDayWorkingHours, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.ShiftDefinition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_definitions
		WHERE id = $1 AND deleted_at IS NULL
	`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftDefinition{}, shift.ErrShiftNotFound
		}
		return shift.ShiftDefinition{}, fmt.Errorf("failed to get shift with id %s: %w", id, err)
	}

	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context) ([]shift.ShiftDefinition, error) {
	return r.list(ctx, false)
}

// ListConcrete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListConcrete(ctx context.Context) ([]shift.ShiftDefinition, error) {
	return r.list(ctx, true)
}

func (r *shiftRepositoryImpl) list(ctx context.Context, concreteOnly bool) ([]shift.ShiftDefinition, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shift_definitions
		WHERE deleted_at IS NULL
	`
	if concreteOnly {
		query += " AND is_auto_shift = FALSE"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.ShiftDefinition
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
