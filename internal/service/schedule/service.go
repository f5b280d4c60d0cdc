package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/schedule"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/database"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/timeutil"
)

type scheduleServiceImpl struct {
	tx             database.Transactor
	assignmentRepo schedule.ScheduleAssignmentRepository
	employeeRepo   employee.EmployeeRepository
	shiftRepo      shift.ShiftRepository

	// Assignment mutation is serialized per employee so two concurrent bulk
	// requests cannot read the same history and write conflicting truncations.
	// Resolution reads need no locking, they operate on snapshots.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewScheduleService(
	tx database.Transactor,
	assignmentRepo schedule.ScheduleAssignmentRepository,
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
) schedule.ScheduleService {
	return &scheduleServiceImpl{
		tx:             tx,
		assignmentRepo: assignmentRepo,
		employeeRepo:   employeeRepo,
		shiftRepo:      shiftRepo,
		locks:          make(map[string]*sync.Mutex),
	}
}

func (s *scheduleServiceImpl) employeeLock(employeeID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[employeeID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[employeeID] = mu
	}
	return mu
}

// ResolveSchedule implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ResolveSchedule(ctx context.Context, employeeID string, date time.Time) (schedule.ScheduleStateResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return schedule.ScheduleStateResponse{}, schedule.ErrEmployeeNotFound
		}
		return schedule.ScheduleStateResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	history, err := s.assignmentRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return schedule.ScheduleStateResponse{}, fmt.Errorf("failed to load schedule history: %w", err)
	}

	state := ResolveState(history, date)
	if len(state.Overlaps) > 0 {
		// Tie-break resolved it, but the history needs operator review.
		slog.Warn("ambiguous active schedule",
			"employee_id", employeeID,
			"date", date.Format("2006-01-02"),
			"winner_id", state.Assignment.ID,
			"overlap_count", len(state.Overlaps))
	}

	return mapStateToResponse(employeeID, date, state), nil
}

// AssignSchedules implements schedule.ScheduleService.
func (s *scheduleServiceImpl) AssignSchedules(ctx context.Context, req schedule.AssignSchedulesRequest) (schedule.AssignmentBatchResult, error) {
	if err := req.Validate(); err != nil {
		return schedule.AssignmentBatchResult{}, err
	}

	from := req.FromDateValue()
	to := req.ToDateValue()

	// Structural checks reject the whole request before any mutation.
	shiftTypeID := shift.ShiftType(req.ShiftTypeID)
	if req.ShiftID != nil && *req.ShiftID != "" {
		def, err := s.shiftRepo.GetByID(ctx, *req.ShiftID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, shift.ErrShiftNotFound) {
				return schedule.AssignmentBatchResult{}, schedule.ErrShiftNotFound
			}
			return schedule.AssignmentBatchResult{}, fmt.Errorf("failed to get shift: %w", err)
		}
		if shiftTypeID == "" {
			shiftTypeID = def.ShiftTypeID
		}
	}

	now := time.Now().UTC()
	result := schedule.AssignmentBatchResult{
		Assigned: make([]schedule.ScheduleAssignmentResponse, 0, len(req.EmployeeIDs)),
		Failures: make([]schedule.AssignmentFailure, 0),
	}

	// Partial-failure semantics: one employee failing never rolls back the
	// others; retries happen per failed employee.
	for _, employeeID := range req.EmployeeIDs {
		created, err := s.assignOne(ctx, employeeID, req, shiftTypeID, from, to, now)
		if err != nil {
			slog.Warn("schedule assignment failed",
				"employee_id", employeeID,
				"error", err)
			result.Failures = append(result.Failures, schedule.AssignmentFailure{
				EmployeeID: employeeID,
				Reason:     err.Error(),
			})
			continue
		}
		result.Assigned = append(result.Assigned, schedule.MapAssignmentToResponse(created))
	}

	return result, nil
}

func (s *scheduleServiceImpl) assignOne(
	ctx context.Context,
	employeeID string,
	req schedule.AssignSchedulesRequest,
	shiftTypeID shift.ShiftType,
	from time.Time,
	to *time.Time,
	now time.Time,
) (schedule.ScheduleAssignment, error) {
	mu := s.employeeLock(employeeID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return schedule.ScheduleAssignment{}, schedule.ErrEmployeeNotFound
		}
		return schedule.ScheduleAssignment{}, fmt.Errorf("failed to get employee: %w", err)
	}

	var created schedule.ScheduleAssignment
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		history, err := s.assignmentRepo.GetByEmployeeID(txCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to load schedule history: %w", err)
		}

		if req.ReplaceExisting {
			if err := s.closeOverlapping(txCtx, history, from, to, now); err != nil {
				return err
			}
		}

		created, err = s.assignmentRepo.Create(txCtx, schedule.ScheduleAssignment{
			ID:                 uuid.NewString(),
			EmployeeID:         employeeID,
			ShiftID:            req.ShiftID,
			ShiftTypeID:        shiftTypeID,
			FromDate:           from,
			ToDate:             to,
			IsOvertimeEligible: req.IsOvertimeEligible,
			IsAutoShift:        req.IsAutoShift,
			CreatedAt:          now,
		})
		if err != nil {
			return fmt.Errorf("failed to create schedule assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return schedule.ScheduleAssignment{}, err
	}

	return created, nil
}

// closeOverlapping applies the replace semantics: every live assignment whose
// range intersects the new range is range-truncated to the day before the new
// from date, or marked superseded when the new range fully covers it. Nothing
// is deleted, the history stays auditable.
func (s *scheduleServiceImpl) closeOverlapping(
	ctx context.Context,
	history []schedule.ScheduleAssignment,
	from time.Time,
	to *time.Time,
	now time.Time,
) error {
	for _, a := range history {
		if !a.Live() {
			continue
		}
		if !timeutil.RangesOverlap(a.FromDate, a.ToDate, from, to) {
			continue
		}
		if !a.FromDate.Before(timeutil.Day(from)) {
			// Fully superseded: the old range starts inside the new one.
			if err := s.assignmentRepo.MarkSuperseded(ctx, a.ID, now); err != nil {
				return fmt.Errorf("failed to mark assignment %s superseded: %w", a.ID, err)
			}
			continue
		}
		if err := s.assignmentRepo.TruncateRange(ctx, a.ID, timeutil.DayBefore(from)); err != nil {
			return fmt.Errorf("failed to truncate assignment %s: %w", a.ID, err)
		}
	}
	return nil
}

// GetScheduleHistory implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetScheduleHistory(ctx context.Context, employeeID string) ([]schedule.ScheduleAssignmentResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, schedule.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	history, err := s.assignmentRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule history: %w", err)
	}

	responses := make([]schedule.ScheduleAssignmentResponse, 0, len(history))
	for _, a := range history {
		responses = append(responses, schedule.MapAssignmentToResponse(a))
	}
	return responses, nil
}

// ListEmployeesByScheduleState implements schedule.ScheduleService.
func (s *scheduleServiceImpl) ListEmployeesByScheduleState(ctx context.Context, filter schedule.EmployeePickerFilter, refDate time.Time) ([]employee.Employee, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, employee.Filter{
		BranchID:     filter.BranchID,
		DepartmentID: filter.DepartmentID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	mode := schedule.SelectionMode(filter.Mode)
	if mode == schedule.SelectAll {
		return employees, nil
	}

	histories := make(map[string][]schedule.ScheduleAssignment, len(employees))
	for _, emp := range employees {
		history, err := s.assignmentRepo.GetByEmployeeID(ctx, emp.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load schedule history for %s: %w", emp.ID, err)
		}
		histories[emp.ID] = history
	}

	return FilterByScheduleState(employees, histories, mode, refDate), nil
}

func mapStateToResponse(employeeID string, date time.Time, state schedule.ScheduleState) schedule.ScheduleStateResponse {
	resp := schedule.ScheduleStateResponse{
		EmployeeID: employeeID,
		Date:       date.Format("2006-01-02"),
		State:      string(state.Kind),
	}
	if state.Assignment != nil {
		assignment := schedule.MapAssignmentToResponse(*state.Assignment)
		resp.Assignment = &assignment
	}
	for _, o := range state.Overlaps {
		resp.Overlaps = append(resp.Overlaps, schedule.MapAssignmentToResponse(o))
	}
	return resp
}
