package shift

import "time"

// ShiftDefinition is immutable reference data from the shift catalog. OnDutyTime
// and OffDutyTime carry only a wall clock; the date component is ignored.
type ShiftDefinition struct {
	ID                    string
	Name                  string
	ShiftTypeID           ShiftType
	OnDutyTime            time.Time
	OffDutyTime           time.Time
	IsAutoShift           bool
	HalfDayThresholdHours float64
	HalfDayWorkingHours   float64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type ShiftType string

const (
	// ShiftTypeFixed expects a single in/out punch pair compared against the
	// on/off duty window.
	ShiftTypeFixed ShiftType = "fixed"
	// ShiftTypeFlexibleMultiPunch permits up to MaxFlexiblePairs in/out pairs
	// per day.
	ShiftTypeFlexibleMultiPunch ShiftType = "flexible_multi_punch"
)

var ShiftTypeValues = []string{
	string(ShiftTypeFixed),
	string(ShiftTypeFlexibleMultiPunch),
}

// MaxFlexiblePairs bounds the number of in/out pairs a flexible shift day can hold.
const MaxFlexiblePairs = 7

// ScheduledMinutes returns the length of the duty window in minutes. Windows that
// cross midnight wrap into the next day.
func (s ShiftDefinition) ScheduledMinutes() int {
	on := s.OnDutyTime.Hour()*60 + s.OnDutyTime.Minute()
	off := s.OffDutyTime.Hour()*60 + s.OffDutyTime.Minute()
	if off <= on {
		off += 24 * 60
	}
	return off - on
}
