package attendance

import (
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/attendance"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/timeutil"
)

// nearestWindowResolver is the default auto-shift heuristic: score every
// candidate by how far the first and last punch sit from its duty window, in
// minutes of day, and pick the closest. Deployments with their own detection
// logic replace this through the AutoShiftResolver interface.
type nearestWindowResolver struct{}

func NewNearestWindowResolver() attendance.AutoShiftResolver {
	return nearestWindowResolver{}
}

func (nearestWindowResolver) ResolveShift(punches []attendance.PunchEvent, candidates []shift.ShiftDefinition) *shift.ShiftDefinition {
	if len(punches) == 0 || len(candidates) == 0 {
		return nil
	}

	first := timeutil.MinuteOfDay(punches[0].Timestamp)
	last := timeutil.MinuteOfDay(punches[len(punches)-1].Timestamp)

	var best *shift.ShiftDefinition
	bestScore := 0
	for i := range candidates {
		c := &candidates[i]
		score := clockDistance(first, timeutil.MinuteOfDay(c.OnDutyTime)) +
			clockDistance(last, timeutil.MinuteOfDay(c.OffDutyTime))
		if best == nil || score < bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

// clockDistance is the minute distance between two times of day on a 24h ring,
// so a 23:50 punch is 20 minutes from a 00:10 duty time, not 23h40m.
func clockDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if wrapped := 24*60 - d; wrapped < d {
		return wrapped
	}
	return d
}
