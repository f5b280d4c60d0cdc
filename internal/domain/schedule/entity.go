package schedule

import (
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
)

// ScheduleAssignment is one time-bounded binding of a shift to one employee.
// Assignments are never deleted: when superseded they are range-truncated or
// marked superseded so the full history stays auditable.
type ScheduleAssignment struct {
	ID                 string
	EmployeeID         string
	ShiftID            *string // nil when the assignment is auto-shift
	ShiftTypeID        shift.ShiftType
	FromDate           time.Time
	ToDate             *time.Time // inclusive; nil = open-ended
	IsOvertimeEligible bool
	IsAutoShift        bool
	SupersededAt       *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Live reports whether the assignment still participates in resolution.
func (a ScheduleAssignment) Live() bool {
	return a.SupersededAt == nil
}

// StateKind describes whether an employee has an applicable schedule on a date.
type StateKind string

const (
	// StateActive: exactly one concrete assignment covers the date.
	StateActive StateKind = "active"
	// StateAuto: the covering assignment defers the concrete shift to build time.
	StateAuto StateKind = "auto"
	// StateExpired: history is non-empty but no range contains the date.
	StateExpired StateKind = "expired"
	// StateUnscheduled: the employee has no schedule history at all.
	StateUnscheduled StateKind = "unscheduled"
)

// ScheduleState is the result of resolving an employee's history on a date.
type ScheduleState struct {
	Kind       StateKind
	Assignment *ScheduleAssignment
	// Overlaps holds assignments that also covered the date but lost the
	// created-at tie-break. Non-empty means the history needs operator review.
	Overlaps []ScheduleAssignment
}

// Scheduled reports whether the state carries an applicable assignment.
func (s ScheduleState) Scheduled() bool {
	return s.Kind == StateActive || s.Kind == StateAuto
}

// SelectionMode filters employees by resolved schedule state, as used by the
// bulk-assignment pickers.
type SelectionMode string

const (
	SelectUnscheduledOnly SelectionMode = "unscheduled_only"
	SelectScheduledOnly   SelectionMode = "scheduled_only"
	SelectAll             SelectionMode = "all"
)

var SelectionModeValues = []string{
	string(SelectUnscheduledOnly),
	string(SelectScheduledOnly),
	string(SelectAll),
}
