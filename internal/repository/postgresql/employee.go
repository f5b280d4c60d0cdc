package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, employee_code, full_name, branch_id, department_id, device_user_id, status, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.FullName, &e.BranchID, &e.DepartmentID,
		&e.DeviceUserID, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1 AND deleted_at IS NULL
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE deleted_at IS NULL
	`

	var conditions []string
	var args []any
	argPos := 1

	if filter.BranchID != nil {
		conditions = append(conditions, fmt.Sprintf("branch_id = $%d", argPos))
		args = append(args, *filter.BranchID)
		argPos++
	}
	if filter.DepartmentID != nil {
		conditions = append(conditions, fmt.Sprintf("department_id = $%d", argPos))
		args = append(args, *filter.DepartmentID)
		argPos++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY employee_code"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByDeviceUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByDeviceUserID(ctx context.Context, deviceUserID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE device_user_id = $1 AND deleted_at IS NULL
	`

	e, err := scanEmployee(q.QueryRow(ctx, query, deviceUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotMapped
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by device user id %s: %w", deviceUserID, err)
	}

	return e, nil
}

// GetTimezone implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetTimezone(ctx context.Context, employeeID string) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT b.timezone
		FROM employees e
		JOIN branches b ON b.id = e.branch_id
		WHERE e.id = $1 AND e.deleted_at IS NULL
	`

	var timezone *string
	err := q.QueryRow(ctx, query, employeeID).Scan(&timezone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", employee.ErrEmployeeNotFound
		}
		return "", fmt.Errorf("failed to get timezone for employee %s: %w", employeeID, err)
	}
	if timezone == nil || *timezone == "" {
		return "", employee.ErrBranchTimezoneUnset
	}

	return *timezone, nil
}
