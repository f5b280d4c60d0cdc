package schedule

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/schedule"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTxRunner runs the callback without a database transaction.
type fakeTxRunner struct{}

func (fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeDirectory struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeDirectory) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeDirectory) List(ctx context.Context, filter employee.Filter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeDirectory) GetByDeviceUserID(ctx context.Context, deviceUserID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotMapped
}

func (r *fakeEmployeeDirectory) GetTimezone(ctx context.Context, employeeID string) (string, error) {
	return "UTC", nil
}

type fakeShiftCatalog struct {
	shifts map[string]shift.ShiftDefinition
}

func (r *fakeShiftCatalog) GetByID(ctx context.Context, id string) (shift.ShiftDefinition, error) {
	s, ok := r.shifts[id]
	if !ok {
		return shift.ShiftDefinition{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (r *fakeShiftCatalog) List(ctx context.Context) ([]shift.ShiftDefinition, error) {
	var out []shift.ShiftDefinition
	for _, s := range r.shifts {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeShiftCatalog) ListConcrete(ctx context.Context) ([]shift.ShiftDefinition, error) {
	var out []shift.ShiftDefinition
	for _, s := range r.shifts {
		if !s.IsAutoShift {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	assignments map[string]schedule.ScheduleAssignment
	truncated   map[string]time.Time
	superseded  map[string]time.Time
}

func newFakeAssignmentRepo(assignments ...schedule.ScheduleAssignment) *fakeAssignmentRepo {
	r := &fakeAssignmentRepo{
		assignments: make(map[string]schedule.ScheduleAssignment),
		truncated:   make(map[string]time.Time),
		superseded:  make(map[string]time.Time),
	}
	for _, a := range assignments {
		r.assignments[a.ID] = a
	}
	return r
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, a schedule.ScheduleAssignment) (schedule.ScheduleAssignment, error) {
	r.assignments[a.ID] = a
	return a, nil
}

func (r *fakeAssignmentRepo) GetByID(ctx context.Context, id string) (schedule.ScheduleAssignment, error) {
	a, ok := r.assignments[id]
	if !ok {
		return schedule.ScheduleAssignment{}, schedule.ErrAssignmentNotFound
	}
	return a, nil
}

func (r *fakeAssignmentRepo) GetByEmployeeID(ctx context.Context, employeeID string) ([]schedule.ScheduleAssignment, error) {
	var out []schedule.ScheduleAssignment
	for _, a := range r.assignments {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) TruncateRange(ctx context.Context, id string, toDate time.Time) error {
	a, ok := r.assignments[id]
	if !ok {
		return schedule.ErrAssignmentNotFound
	}
	a.ToDate = &toDate
	r.assignments[id] = a
	r.truncated[id] = toDate
	return nil
}

func (r *fakeAssignmentRepo) MarkSuperseded(ctx context.Context, id string, at time.Time) error {
	a, ok := r.assignments[id]
	if !ok {
		return schedule.ErrAssignmentNotFound
	}
	a.SupersededAt = &at
	r.assignments[id] = a
	r.superseded[id] = at
	return nil
}

func newTestService(repo *fakeAssignmentRepo) *scheduleServiceImpl {
	return newTestServiceWith(repo, &fakeEmployeeDirectory{}, &fakeShiftCatalog{})
}

func newTestServiceWith(repo *fakeAssignmentRepo, emps *fakeEmployeeDirectory, shifts *fakeShiftCatalog) *scheduleServiceImpl {
	return &scheduleServiceImpl{
		tx:             fakeTxRunner{},
		assignmentRepo: repo,
		employeeRepo:   emps,
		shiftRepo:      shifts,
		locks:          make(map[string]*sync.Mutex),
	}
}

func TestCloseOverlapping_TruncatesEarlierAssignment(t *testing.T) {
	existing := assignment("existing", date(2026, 3, 1), datePtr(2026, 3, 31), date(2026, 2, 1))
	repo := newFakeAssignmentRepo(existing)
	svc := newTestService(repo)

	now := time.Now().UTC()
	err := svc.closeOverlapping(context.Background(), []schedule.ScheduleAssignment{existing},
		date(2026, 3, 15), nil, now)
	require.NoError(t, err)

	// Truncated to the day before the new range, never deleted.
	to, ok := repo.truncated["existing"]
	require.True(t, ok)
	assert.Equal(t, date(2026, 3, 14), to)
	assert.Empty(t, repo.superseded)

	got, err := repo.GetByID(context.Background(), "existing")
	require.NoError(t, err)
	assert.True(t, got.Live())
}

func TestCloseOverlapping_MarksFullyCoveredSuperseded(t *testing.T) {
	existing := assignment("existing", date(2026, 3, 10), datePtr(2026, 3, 20), date(2026, 2, 1))
	repo := newFakeAssignmentRepo(existing)
	svc := newTestService(repo)

	now := time.Now().UTC()
	err := svc.closeOverlapping(context.Background(), []schedule.ScheduleAssignment{existing},
		date(2026, 3, 1), datePtr(2026, 3, 31), now)
	require.NoError(t, err)

	assert.Empty(t, repo.truncated)
	assert.Contains(t, repo.superseded, "existing")

	got, err := repo.GetByID(context.Background(), "existing")
	require.NoError(t, err)
	assert.False(t, got.Live())
}

func TestCloseOverlapping_SkipsDisjointAndDeadAssignments(t *testing.T) {
	disjoint := assignment("disjoint", date(2026, 1, 1), datePtr(2026, 1, 31), date(2025, 12, 1))
	dead := assignment("dead", date(2026, 3, 1), datePtr(2026, 3, 31), date(2026, 2, 1))
	at := date(2026, 2, 25)
	dead.SupersededAt = &at

	repo := newFakeAssignmentRepo(disjoint, dead)
	svc := newTestService(repo)

	err := svc.closeOverlapping(context.Background(),
		[]schedule.ScheduleAssignment{disjoint, dead},
		date(2026, 3, 15), nil, time.Now().UTC())
	require.NoError(t, err)

	assert.Empty(t, repo.truncated)
	assert.Empty(t, repo.superseded)
}

func TestAssignSchedules_ValidationFailures(t *testing.T) {
	svc := newTestService(newFakeAssignmentRepo())

	tests := []struct {
		name  string
		req   schedule.AssignSchedulesRequest
		field string
	}{
		{
			name:  "no employees",
			req:   schedule.AssignSchedulesRequest{ShiftID: strPtr("s1"), FromDate: "2026-03-01"},
			field: "employee_ids",
		},
		{
			name:  "missing shift without auto",
			req:   schedule.AssignSchedulesRequest{EmployeeIDs: []string{"e1"}, FromDate: "2026-03-01"},
			field: "shift_id",
		},
		{
			name: "to before from",
			req: schedule.AssignSchedulesRequest{
				EmployeeIDs: []string{"e1"},
				ShiftID:     strPtr("s1"),
				FromDate:    "2026-03-10",
				ToDate:      strPtr("2026-03-01"),
			},
			field: "to_date",
		},
		{
			name: "bad date format",
			req: schedule.AssignSchedulesRequest{
				EmployeeIDs: []string{"e1"},
				ShiftID:     strPtr("s1"),
				FromDate:    "03/01/2026",
			},
			field: "from_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AssignSchedules(context.Background(), tt.req)
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), tt.field)
		})
	}
}

func TestAssignSchedules_ReplaceThenResolve(t *testing.T) {
	old := assignment("old", date(2026, 3, 1), datePtr(2026, 3, 31), date(2026, 2, 1))
	repo := newFakeAssignmentRepo(old)
	emps := &fakeEmployeeDirectory{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1"},
	}}
	shifts := &fakeShiftCatalog{shifts: map[string]shift.ShiftDefinition{
		"shift-night": {ID: "shift-night", ShiftTypeID: shift.ShiftTypeFixed},
	}}
	svc := newTestServiceWith(repo, emps, shifts)

	result, err := svc.AssignSchedules(context.Background(), schedule.AssignSchedulesRequest{
		EmployeeIDs:     []string{"emp-1"},
		ShiftID:         strPtr("shift-night"),
		FromDate:        "2026-03-15",
		ReplaceExisting: true,
	})
	require.NoError(t, err)
	require.Len(t, result.Assigned, 1)
	assert.Empty(t, result.Failures)

	history, err := repo.GetByEmployeeID(context.Background(), "emp-1")
	require.NoError(t, err)
	require.Len(t, history, 2)

	t.Run("dates in the replaced range resolve to the new assignment", func(t *testing.T) {
		state := ResolveState(history, date(2026, 3, 20))
		require.Equal(t, schedule.StateActive, state.Kind)
		require.NotNil(t, state.Assignment)
		assert.Equal(t, result.Assigned[0].ID, state.Assignment.ID)
		assert.Equal(t, "shift-night", *state.Assignment.ShiftID)
		assert.Empty(t, state.Overlaps)
	})

	t.Run("the old assignment survives truncated, never deleted", func(t *testing.T) {
		got, err := repo.GetByID(context.Background(), "old")
		require.NoError(t, err)
		assert.True(t, got.Live())
		require.NotNil(t, got.ToDate)
		assert.Equal(t, date(2026, 3, 14), *got.ToDate)
	})

	t.Run("dates before the replacement still resolve to the old assignment", func(t *testing.T) {
		state := ResolveState(history, date(2026, 3, 10))
		require.Equal(t, schedule.StateActive, state.Kind)
		require.NotNil(t, state.Assignment)
		assert.Equal(t, "old", state.Assignment.ID)
	})
}

func TestAssignSchedules_PartialFailureKeepsOthers(t *testing.T) {
	repo := newFakeAssignmentRepo()
	emps := &fakeEmployeeDirectory{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1"},
		"emp-2": {ID: "emp-2"},
	}}
	shifts := &fakeShiftCatalog{shifts: map[string]shift.ShiftDefinition{
		"shift-day": {ID: "shift-day", ShiftTypeID: shift.ShiftTypeFixed},
	}}
	svc := newTestServiceWith(repo, emps, shifts)

	result, err := svc.AssignSchedules(context.Background(), schedule.AssignSchedulesRequest{
		EmployeeIDs: []string{"emp-1", "ghost", "emp-2"},
		ShiftID:     strPtr("shift-day"),
		FromDate:    "2026-03-01",
	})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, "ghost", result.Failures[0].EmployeeID)
	assert.Equal(t, schedule.ErrEmployeeNotFound.Error(), result.Failures[0].Reason)

	// The unknown employee never rolls back the other creations.
	require.Len(t, result.Assigned, 2)
	for _, id := range []string{"emp-1", "emp-2"} {
		history, err := repo.GetByEmployeeID(context.Background(), id)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	}
}

func TestAssignSchedules_UnknownShiftRejectsWholeRequest(t *testing.T) {
	repo := newFakeAssignmentRepo()
	emps := &fakeEmployeeDirectory{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1"},
	}}
	svc := newTestServiceWith(repo, emps, &fakeShiftCatalog{})

	_, err := svc.AssignSchedules(context.Background(), schedule.AssignSchedulesRequest{
		EmployeeIDs: []string{"emp-1"},
		ShiftID:     strPtr("no-such-shift"),
		FromDate:    "2026-03-01",
	})
	assert.ErrorIs(t, err, schedule.ErrShiftNotFound)
	assert.Empty(t, repo.assignments)
}

func TestAssignSchedules_AutoShiftNeedsNoShiftID(t *testing.T) {
	req := schedule.AssignSchedulesRequest{
		EmployeeIDs: []string{"e1"},
		IsAutoShift: true,
		FromDate:    "2026-03-01",
	}
	assert.NoError(t, req.Validate())
}
