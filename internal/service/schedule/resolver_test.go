package schedule

import (
	"testing"
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func strPtr(s string) *string {
	return &s
}

func assignment(id string, from time.Time, to *time.Time, createdAt time.Time) schedule.ScheduleAssignment {
	return schedule.ScheduleAssignment{
		ID:          id,
		EmployeeID:  "emp-1",
		ShiftID:     strPtr("shift-" + id),
		ShiftTypeID: "fixed",
		FromDate:    from,
		ToDate:      to,
		CreatedAt:   createdAt,
	}
}

func TestResolveState_EmptyHistory(t *testing.T) {
	state := ResolveState(nil, date(2026, 3, 10))
	assert.Equal(t, schedule.StateUnscheduled, state.Kind)
	assert.Nil(t, state.Assignment)
}

func TestResolveState_SingleAssignment(t *testing.T) {
	a := assignment("a", date(2026, 3, 1), datePtr(2026, 3, 31), date(2026, 2, 20))
	history := []schedule.ScheduleAssignment{a}

	t.Run("date inside range is active", func(t *testing.T) {
		state := ResolveState(history, date(2026, 3, 10))
		require.Equal(t, schedule.StateActive, state.Kind)
		require.NotNil(t, state.Assignment)
		assert.Equal(t, "a", state.Assignment.ID)
		assert.Empty(t, state.Overlaps)
	})

	t.Run("range bounds are inclusive", func(t *testing.T) {
		assert.Equal(t, schedule.StateActive, ResolveState(history, date(2026, 3, 1)).Kind)
		assert.Equal(t, schedule.StateActive, ResolveState(history, date(2026, 3, 31)).Kind)
	})

	t.Run("date outside range is expired", func(t *testing.T) {
		state := ResolveState(history, date(2026, 4, 1))
		assert.Equal(t, schedule.StateExpired, state.Kind)
		assert.Nil(t, state.Assignment)
	})
}

func TestResolveState_OpenEndedRange(t *testing.T) {
	a := assignment("a", date(2026, 3, 1), nil, date(2026, 2, 20))
	state := ResolveState([]schedule.ScheduleAssignment{a}, date(2030, 1, 1))
	assert.Equal(t, schedule.StateActive, state.Kind)
}

func TestResolveState_OverlapTieBreak(t *testing.T) {
	older := assignment("older", date(2026, 3, 1), datePtr(2026, 3, 31), date(2026, 2, 1))
	newer := assignment("newer", date(2026, 3, 15), datePtr(2026, 4, 15), date(2026, 2, 20))
	history := []schedule.ScheduleAssignment{older, newer}

	t.Run("latest created wins on the overlap", func(t *testing.T) {
		state := ResolveState(history, date(2026, 3, 20))
		require.Equal(t, schedule.StateActive, state.Kind)
		assert.Equal(t, "newer", state.Assignment.ID)
		require.Len(t, state.Overlaps, 1)
		assert.Equal(t, "older", state.Overlaps[0].ID)
	})

	t.Run("outside the overlap only one matches", func(t *testing.T) {
		state := ResolveState(history, date(2026, 3, 5))
		require.Equal(t, schedule.StateActive, state.Kind)
		assert.Equal(t, "older", state.Assignment.ID)
		assert.Empty(t, state.Overlaps)
	})
}

func TestResolveState_SupersededNeverMatches(t *testing.T) {
	a := assignment("a", date(2026, 3, 1), datePtr(2026, 3, 31), date(2026, 2, 1))
	at := date(2026, 2, 25)
	a.SupersededAt = &at

	state := ResolveState([]schedule.ScheduleAssignment{a}, date(2026, 3, 10))
	assert.Equal(t, schedule.StateExpired, state.Kind)
}

func TestResolveState_AutoShift(t *testing.T) {
	a := assignment("a", date(2026, 3, 1), nil, date(2026, 2, 1))
	a.ShiftID = nil
	a.IsAutoShift = true

	state := ResolveState([]schedule.ScheduleAssignment{a}, date(2026, 3, 10))
	require.Equal(t, schedule.StateAuto, state.Kind)
	require.NotNil(t, state.Assignment)
	assert.True(t, state.Scheduled())
}

func TestFilterByScheduleState(t *testing.T) {
	employees := []employee.Employee{
		{ID: "scheduled"},
		{ID: "unscheduled"},
		{ID: "expired"},
	}
	histories := map[string][]schedule.ScheduleAssignment{
		"scheduled": {assignment("a", date(2026, 3, 1), nil, date(2026, 2, 1))},
		"expired":   {assignment("b", date(2025, 1, 1), datePtr(2025, 1, 31), date(2024, 12, 1))},
	}
	refDate := date(2026, 3, 10)

	t.Run("all returns everyone", func(t *testing.T) {
		got := FilterByScheduleState(employees, histories, schedule.SelectAll, refDate)
		assert.Len(t, got, 3)
	})

	t.Run("unscheduled_only includes expired and empty histories", func(t *testing.T) {
		got := FilterByScheduleState(employees, histories, schedule.SelectUnscheduledOnly, refDate)
		require.Len(t, got, 2)
		assert.Equal(t, "unscheduled", got[0].ID)
		assert.Equal(t, "expired", got[1].ID)
	})

	t.Run("scheduled_only includes only applicable assignments", func(t *testing.T) {
		got := FilterByScheduleState(employees, histories, schedule.SelectScheduledOnly, refDate)
		require.Len(t, got, 1)
		assert.Equal(t, "scheduled", got[0].ID)
	})
}
