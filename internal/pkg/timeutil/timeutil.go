package timeutil

import "time"

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayBefore returns midnight of the calendar day before t.
func DayBefore(t time.Time) time.Time {
	return Day(t).AddDate(0, 0, -1)
}

// ContainsDate reports whether date falls inside the inclusive range [from, to].
// A nil to means the range is open-ended.
func ContainsDate(from time.Time, to *time.Time, date time.Time) bool {
	d := Day(date)
	if d.Before(Day(from)) {
		return false
	}
	if to == nil {
		return true
	}
	return !d.After(Day(*to))
}

// RangesOverlap reports whether the inclusive date ranges [aFrom, aTo] and
// [bFrom, bTo] share at least one day. Nil end dates are open-ended.
func RangesOverlap(aFrom time.Time, aTo *time.Time, bFrom time.Time, bTo *time.Time) bool {
	if aTo != nil && Day(*aTo).Before(Day(bFrom)) {
		return false
	}
	if bTo != nil && Day(*bTo).Before(Day(aFrom)) {
		return false
	}
	return true
}

// MinuteOfDay returns the number of minutes elapsed since midnight of t's day.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// MinutesBetween returns the whole minutes from a to b, negative when b is before a.
func MinutesBetween(a, b time.Time) int {
	return int(b.Sub(a).Minutes())
}

// At composes the wall clock of clock onto the calendar day of date in loc.
func At(date time.Time, clock time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
}
