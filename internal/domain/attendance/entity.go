package attendance

import (
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
)

// PunchEvent is a raw device reading. Events are append-only and may arrive out
// of order; the record builder sorts them.
type PunchEvent struct {
	ID             string
	EmployeeID     string
	DeviceID       string
	Timestamp      time.Time
	DeviceFunction DeviceFunction
	CreatedAt      time.Time
}

// DeviceFunction hints the punch direction as configured on the terminal.
type DeviceFunction string

const (
	FunctionIn          DeviceFunction = "in"
	FunctionOut         DeviceFunction = "out"
	FunctionBoth        DeviceFunction = "both"
	FunctionUnspecified DeviceFunction = "unspecified"
)

var DeviceFunctionValues = []string{
	string(FunctionIn),
	string(FunctionOut),
	string(FunctionBoth),
	string(FunctionUnspecified),
}

// PunchPair is one in/out tuple of a working day. Out is nil for an open pair.
type PunchPair struct {
	In  *time.Time
	Out *time.Time
}

// Complete reports whether the pair has both punches.
func (p PunchPair) Complete() bool {
	return p.In != nil && p.Out != nil
}

// Minutes returns the worked minutes of a complete pair, 0 otherwise.
func (p PunchPair) Minutes() int {
	if !p.Complete() {
		return 0
	}
	return int(p.Out.Sub(*p.In).Minutes())
}

// ShiftSnapshot freezes the shift the record was built against, so the record
// stays reproducible even if the catalog changes later.
type ShiftSnapshot struct {
	ShiftID      string
	Name         string
	ShiftTypeID  shift.ShiftType
	OnDutyTime   time.Time
	OffDutyTime  time.Time
	AutoResolved bool
}

// DayStatus is the canonical attendance status. Presentation (labels, colors)
// is owned by the consumer.
type DayStatus string

const (
	StatusPresent     DayStatus = "present"
	StatusAbsent      DayStatus = "absent"
	StatusLate        DayStatus = "late"
	StatusHalfDay     DayStatus = "half_day"
	StatusMissedPunch DayStatus = "missed_punch"
	StatusUnscheduled DayStatus = "unscheduled"
)

// DayAttendanceRecord is the derived per-day attendance of one employee. It is
// never the system of record: identical inputs rebuild an identical record.
type DayAttendanceRecord struct {
	EmployeeID        string
	Date              time.Time
	ScheduleState     string
	Shift             *ShiftSnapshot
	Pairs             []PunchPair
	IncompletePair    bool
	LateComingMinutes int
	EarlyGoingMinutes int
	TotalMinutes      int
	OvertimeMinutes   int
	Status            DayStatus
	Warnings          []string
}
