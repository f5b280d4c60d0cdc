package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/attendance"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/schedule"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/validator"
	scheduleService "github.com/shiftcore-hq/shiftcore-backend-go/internal/service/schedule"
	"golang.org/x/sync/errgroup"
)

// maxReportDays bounds one report request to a year of days.
const maxReportDays = 366

// reportWorkers bounds the per-day fan-out when building a report.
const reportWorkers = 8

type attendanceServiceImpl struct {
	punchRepo      attendance.PunchEventRepository
	employeeRepo   employee.EmployeeRepository
	assignmentRepo schedule.ScheduleAssignmentRepository
	shiftRepo      shift.ShiftRepository
	autoResolver   attendance.AutoShiftResolver
}

func NewAttendanceService(
	punchRepo attendance.PunchEventRepository,
	employeeRepo employee.EmployeeRepository,
	assignmentRepo schedule.ScheduleAssignmentRepository,
	shiftRepo shift.ShiftRepository,
	autoResolver attendance.AutoShiftResolver,
) attendance.AttendanceService {
	return &attendanceServiceImpl{
		punchRepo:      punchRepo,
		employeeRepo:   employeeRepo,
		assignmentRepo: assignmentRepo,
		shiftRepo:      shiftRepo,
		autoResolver:   autoResolver,
	}
}

// BuildAttendanceRecords implements attendance.AttendanceService.
func (a *attendanceServiceImpl) BuildAttendanceRecords(ctx context.Context, req attendance.AttendanceReportRequest) ([]attendance.DayAttendanceRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, _ := time.Parse("2006-01-02", req.FromDate)
	to, _ := time.Parse("2006-01-02", req.ToDate)
	days := int(to.Sub(from).Hours()/24) + 1
	if days > maxReportDays {
		return nil, attendance.ErrDateOutOfRange
	}

	emp, err := a.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	loc := time.UTC
	tz, err := a.employeeRepo.GetTimezone(ctx, emp.ID)
	switch {
	case err == nil:
		parsed, perr := time.LoadLocation(tz)
		if perr != nil {
			slog.Warn("unknown branch timezone, using UTC",
				"employee_id", emp.ID, "timezone", tz)
		} else {
			loc = parsed
		}
	case errors.Is(err, employee.ErrBranchTimezoneUnset) || errors.Is(err, pgx.ErrNoRows):
		slog.Warn("branch timezone unset, using UTC", "employee_id", emp.ID)
	default:
		return nil, fmt.Errorf("failed to get branch timezone: %w", err)
	}

	// Snapshots: one history, one catalog, one punch query for the whole
	// range. The per-day builds are pure functions over these.
	history, err := a.assignmentRepo.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule history: %w", err)
	}
	catalog, err := a.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	rangeStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	rangeEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	punches, err := a.punchRepo.GetByEmployeeAndRange(ctx, emp.ID, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load punch events: %w", err)
	}

	byDay := make(map[string][]attendance.PunchEvent)
	for _, p := range punches {
		key := p.Timestamp.In(loc).Format("2006-01-02")
		byDay[key] = append(byDay[key], p)
	}

	records := make([]attendance.DayAttendanceRecordResponse, days)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(reportWorkers)

	for i := 0; i < days; i++ {
		i := i
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, i)
			state := scheduleService.ResolveState(history, day)
			if len(state.Overlaps) > 0 {
				slog.Warn("ambiguous active schedule",
					"employee_id", emp.ID,
					"date", day.Format("2006-01-02"),
					"overlap_count", len(state.Overlaps))
			}
			rec := Build(BuildInput{
				EmployeeID:   emp.ID,
				Date:         day,
				Punches:      byDay[day.Format("2006-01-02")],
				State:        state,
				ShiftCatalog: catalog,
				AutoResolver: a.autoResolver,
			})
			records[i] = attendance.MapRecordToResponse(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// IngestPunches implements attendance.AttendanceService.
func (a *attendanceServiceImpl) IngestPunches(ctx context.Context, deviceID string, req attendance.IngestPunchesRequest) (attendance.IngestPunchesResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.IngestPunchesResponse{}, err
	}

	resp := attendance.IngestPunchesResponse{}
	events := make([]attendance.PunchEvent, 0, len(req.Rows))

	for i, row := range req.Rows {
		ts, ok := validator.IsValidDateTime(row.Timestamp)
		if !ok {
			resp.Skipped++
			resp.Warnings = append(resp.Warnings, fmt.Sprintf("row %d: malformed timestamp %q", i, row.Timestamp))
			continue
		}

		emp, err := a.employeeRepo.GetByDeviceUserID(ctx, row.DeviceUserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, employee.ErrEmployeeNotMapped) {
				resp.Skipped++
				resp.Warnings = append(resp.Warnings, fmt.Sprintf("row %d: no employee mapped to device user %q", i, row.DeviceUserID))
				continue
			}
			return attendance.IngestPunchesResponse{}, fmt.Errorf("failed to map device user: %w", err)
		}

		fn := attendance.DeviceFunction(row.DeviceFunction)
		if !validator.IsInSlice(row.DeviceFunction, attendance.DeviceFunctionValues) {
			fn = attendance.FunctionUnspecified
		}

		events = append(events, attendance.PunchEvent{
			ID:             uuid.NewString(),
			EmployeeID:     emp.ID,
			DeviceID:       deviceID,
			Timestamp:      ts.UTC(),
			DeviceFunction: fn,
		})
	}

	if len(events) > 0 {
		inserted, err := a.punchRepo.BulkInsert(ctx, events)
		if err != nil {
			return attendance.IngestPunchesResponse{}, fmt.Errorf("failed to insert punch events: %w", err)
		}
		resp.Accepted = inserted
	}

	slog.Info("punch ingest completed",
		"device_id", deviceID,
		"accepted", resp.Accepted,
		"skipped", resp.Skipped)
	return resp, nil
}
