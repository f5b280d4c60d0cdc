package attendance

import (
	"fmt"
	"sort"
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/attendance"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/schedule"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/timeutil"
)

// BuildInput carries everything Build needs as an immutable snapshot: the
// punches already filtered to the employee and calendar day (localized by the
// caller), the resolved schedule state, and the concrete-shift catalog for
// auto-shift resolution.
type BuildInput struct {
	EmployeeID   string
	Date         time.Time
	Punches      []attendance.PunchEvent
	State        schedule.ScheduleState
	ShiftCatalog []shift.ShiftDefinition
	AutoResolver attendance.AutoShiftResolver
}

// Build derives the day attendance record. It is pure and idempotent:
// identical inputs always yield an identical record, so records can be
// recomputed on demand and fanned out across (employee, date) pairs.
func Build(in BuildInput) attendance.DayAttendanceRecord {
	rec := attendance.DayAttendanceRecord{
		EmployeeID:    in.EmployeeID,
		Date:          timeutil.Day(in.Date),
		ScheduleState: string(in.State.Kind),
		Pairs:         []attendance.PunchPair{},
	}

	punches, warnings := sanitizePunches(in.Punches)
	rec.Warnings = warnings

	def, snapshot := effectiveShift(in, punches)
	rec.Shift = snapshot

	if len(punches) == 0 {
		// No punches at all: absent when a schedule was ever in force,
		// unscheduled when the employee has no history.
		if in.State.Kind == schedule.StateUnscheduled {
			rec.Status = attendance.StatusUnscheduled
		} else {
			rec.Status = attendance.StatusAbsent
		}
		return rec
	}

	if def == nil {
		// Punches without an applicable schedule: pair them flexibly so the
		// report shows the activity, but no window to compare against.
		rec.Pairs, rec.IncompletePair = pairFlexible(punches)
		rec.TotalMinutes = totalMinutes(rec.Pairs)
		rec.Status = attendance.StatusUnscheduled
		return rec
	}

	if def.ShiftTypeID == shift.ShiftTypeFlexibleMultiPunch {
		rec.Pairs, rec.IncompletePair = pairFlexible(punches)
	} else {
		rec.Pairs, rec.IncompletePair = pairFixed(punches)
		rec.LateComingMinutes, rec.EarlyGoingMinutes = lateAndEarly(rec.Pairs, *def, rec.Date)
	}

	rec.TotalMinutes = totalMinutes(rec.Pairs)

	if in.State.Assignment != nil && in.State.Assignment.IsOvertimeEligible {
		if ot := rec.TotalMinutes - def.ScheduledMinutes(); ot > 0 {
			rec.OvertimeMinutes = ot
		}
	}

	rec.Status = deriveStatus(rec, *def)
	return rec
}

// sanitizePunches drops structurally invalid events with a warning each and
// returns the rest sorted ascending by timestamp.
func sanitizePunches(punches []attendance.PunchEvent) ([]attendance.PunchEvent, []string) {
	valid := make([]attendance.PunchEvent, 0, len(punches))
	var warnings []string
	for _, p := range punches {
		if p.Timestamp.IsZero() {
			warnings = append(warnings, fmt.Sprintf("skipped punch %s from device %s: zero timestamp", p.ID, p.DeviceID))
			continue
		}
		valid = append(valid, p)
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Timestamp.Before(valid[j].Timestamp)
	})
	return valid, warnings
}

// effectiveShift resolves the concrete shift definition for the day.
func effectiveShift(in BuildInput, punches []attendance.PunchEvent) (*shift.ShiftDefinition, *attendance.ShiftSnapshot) {
	switch in.State.Kind {
	case schedule.StateActive:
		if in.State.Assignment == nil || in.State.Assignment.ShiftID == nil {
			return nil, nil
		}
		for _, def := range in.ShiftCatalog {
			if def.ID == *in.State.Assignment.ShiftID {
				return &def, snapshotOf(def, false)
			}
		}
		return nil, nil
	case schedule.StateAuto:
		if in.AutoResolver == nil || len(punches) == 0 {
			return nil, nil
		}
		candidates := make([]shift.ShiftDefinition, 0, len(in.ShiftCatalog))
		for _, def := range in.ShiftCatalog {
			if !def.IsAutoShift {
				candidates = append(candidates, def)
			}
		}
		def := in.AutoResolver.ResolveShift(punches, candidates)
		if def == nil {
			return nil, nil
		}
		return def, snapshotOf(*def, true)
	default:
		return nil, nil
	}
}

func snapshotOf(def shift.ShiftDefinition, autoResolved bool) *attendance.ShiftSnapshot {
	return &attendance.ShiftSnapshot{
		ShiftID:      def.ID,
		Name:         def.Name,
		ShiftTypeID:  def.ShiftTypeID,
		OnDutyTime:   def.OnDutyTime,
		OffDutyTime:  def.OffDutyTime,
		AutoResolved: autoResolved,
	}
}

// pairFlexible pairs consecutive punches into in/out tuples: 1st/2nd = pair 1,
// 3rd/4th = pair 2, capped at MaxFlexiblePairs. An unpaired trailing punch
// becomes an open in.
func pairFlexible(punches []attendance.PunchEvent) ([]attendance.PunchPair, bool) {
	pairs := make([]attendance.PunchPair, 0, shift.MaxFlexiblePairs)
	incomplete := false
	for i := 0; i < len(punches) && len(pairs) < shift.MaxFlexiblePairs; i += 2 {
		in := punches[i].Timestamp
		pair := attendance.PunchPair{In: &in}
		if i+1 < len(punches) {
			out := punches[i+1].Timestamp
			pair.Out = &out
		} else {
			incomplete = true
		}
		pairs = append(pairs, pair)
	}
	return pairs, incomplete
}

// pairFixed takes the first punch as in and the last as out; a single punch is
// an open in.
func pairFixed(punches []attendance.PunchEvent) ([]attendance.PunchPair, bool) {
	if len(punches) == 0 {
		return []attendance.PunchPair{}, false
	}
	in := punches[0].Timestamp
	pair := attendance.PunchPair{In: &in}
	if len(punches) >= 2 {
		out := punches[len(punches)-1].Timestamp
		pair.Out = &out
		return []attendance.PunchPair{pair}, false
	}
	return []attendance.PunchPair{pair}, true
}

// lateAndEarly compares the single fixed-shift pair against the duty window.
// Flexible shifts have no single window, their late/early stay zero.
func lateAndEarly(pairs []attendance.PunchPair, def shift.ShiftDefinition, day time.Time) (late int, early int) {
	if len(pairs) == 0 || pairs[0].In == nil {
		return 0, 0
	}
	loc := pairs[0].In.Location()
	onDuty := timeutil.At(day, def.OnDutyTime, loc)
	if d := timeutil.MinutesBetween(onDuty, *pairs[0].In); d > 0 {
		late = d
	}
	if pairs[0].Out != nil {
		offDuty := timeutil.At(day, def.OffDutyTime, loc)
		if def.OffDutyTime.Hour()*60+def.OffDutyTime.Minute() <= def.OnDutyTime.Hour()*60+def.OnDutyTime.Minute() {
			// Overnight window: off-duty lands on the next day.
			offDuty = offDuty.AddDate(0, 0, 1)
		}
		if d := timeutil.MinutesBetween(*pairs[0].Out, offDuty); d > 0 {
			early = d
		}
	}
	return late, early
}

func totalMinutes(pairs []attendance.PunchPair) int {
	total := 0
	for _, p := range pairs {
		total += p.Minutes()
	}
	return total
}

// deriveStatus applies the canonical precedence:
// missed_punch > half_day > late > present.
func deriveStatus(rec attendance.DayAttendanceRecord, def shift.ShiftDefinition) attendance.DayStatus {
	if rec.IncompletePair {
		return attendance.StatusMissedPunch
	}
	if def.HalfDayThresholdHours > 0 && float64(rec.TotalMinutes) < def.HalfDayThresholdHours*60 {
		return attendance.StatusHalfDay
	}
	if rec.LateComingMinutes > 0 {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}
