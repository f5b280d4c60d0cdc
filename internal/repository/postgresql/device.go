package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/device"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/database"
)

type deviceRepositoryImpl struct {
	db *database.DB
}

func NewDeviceRepository(db *database.DB) device.DeviceRepository {
	return &deviceRepositoryImpl{db: db}
}

const deviceColumns = `id, serial, branch_id, name, api_key_hash, status, created_at, updated_at`

func scanDevice(row pgx.Row) (device.Device, error) {
	var d device.Device
	err := row.Scan(
		&d.ID, &d.Serial, &d.BranchID, &d.Name, &d.APIKeyHash, &d.Status,
		&d.CreatedAt, &d.UpdatedAt,
	)
	return d, err
}

// GetByID implements device.DeviceRepository.
func (r *deviceRepositoryImpl) GetByID(ctx context.Context, id string) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deviceColumns + `
		FROM devices
		WHERE id = $1
	`

	d, err := scanDevice(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.Device{}, device.ErrDeviceNotFound
		}
		return device.Device{}, fmt.Errorf("failed to get device with id %s: %w", id, err)
	}

	return d, nil
}

// GetBySerial implements device.DeviceRepository.
func (r *deviceRepositoryImpl) GetBySerial(ctx context.Context, serial string) (device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deviceColumns + `
		FROM devices
		WHERE serial = $1
	`

	d, err := scanDevice(q.QueryRow(ctx, query, serial))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return device.Device{}, device.ErrDeviceNotFound
		}
		return device.Device{}, fmt.Errorf("failed to get device with serial %s: %w", serial, err)
	}

	return d, nil
}

// List implements device.DeviceRepository.
func (r *deviceRepositoryImpl) List(ctx context.Context) ([]device.Device, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + deviceColumns + `
		FROM devices
		ORDER BY serial
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []device.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return devices, nil
}
