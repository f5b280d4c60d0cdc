package schedule

import (
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/employee"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/schedule"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/timeutil"
)

// ResolveState determines the applicable schedule state for one date from an
// employee's full assignment history. It is a pure function over the snapshot:
// no locking, safe to fan out across employees and dates.
//
// Superseded assignments never match. When several live assignments cover the
// date the latest-created one wins and the losers are reported in Overlaps so
// the caller can flag the history for operator review.
func ResolveState(history []schedule.ScheduleAssignment, date time.Time) schedule.ScheduleState {
	if len(history) == 0 {
		return schedule.ScheduleState{Kind: schedule.StateUnscheduled}
	}

	var matches []schedule.ScheduleAssignment
	for _, a := range history {
		if !a.Live() {
			continue
		}
		if timeutil.ContainsDate(a.FromDate, a.ToDate, date) {
			matches = append(matches, a)
		}
	}

	if len(matches) == 0 {
		return schedule.ScheduleState{Kind: schedule.StateExpired}
	}

	winner := matches[0]
	for _, m := range matches[1:] {
		if m.CreatedAt.After(winner.CreatedAt) {
			winner = m
		}
	}

	var overlaps []schedule.ScheduleAssignment
	for _, m := range matches {
		if m.ID != winner.ID {
			overlaps = append(overlaps, m)
		}
	}

	state := schedule.ScheduleState{
		Kind:       schedule.StateActive,
		Assignment: &winner,
		Overlaps:   overlaps,
	}
	if winner.IsAutoShift {
		state.Kind = schedule.StateAuto
	}
	return state
}

// FilterByScheduleState filters employees by their resolved schedule state at
// refDate, per the bulk-assignment picker modes. Pure function: histories are
// supplied as a snapshot keyed by employee ID, missing keys count as empty.
func FilterByScheduleState(
	employees []employee.Employee,
	histories map[string][]schedule.ScheduleAssignment,
	mode schedule.SelectionMode,
	refDate time.Time,
) []employee.Employee {
	if mode == schedule.SelectAll {
		return employees
	}

	filtered := make([]employee.Employee, 0, len(employees))
	for _, emp := range employees {
		state := ResolveState(histories[emp.ID], refDate)
		switch mode {
		case schedule.SelectUnscheduledOnly:
			if !state.Scheduled() {
				filtered = append(filtered, emp)
			}
		case schedule.SelectScheduledOnly:
			if state.Scheduled() {
				filtered = append(filtered, emp)
			}
		}
	}
	return filtered
}
