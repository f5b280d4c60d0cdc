package shift

type ShiftResponse struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	ShiftTypeID           string  `json:"shift_type_id"`
	OnDutyTime            string  `json:"on_duty_time"`
	OffDutyTime           string  `json:"off_duty_time"`
	IsAutoShift           bool    `json:"is_auto_shift"`
	HalfDayThresholdHours float64 `json:"half_day_threshold_hours"`
	HalfDayWorkingHours   float64 `json:"half_day_working_hours"`
	ScheduledMinutes      int     `json:"scheduled_minutes"`
}

func MapShiftToResponse(s ShiftDefinition) ShiftResponse {
	return ShiftResponse{
		ID:                    s.ID,
		Name:                  s.Name,
		ShiftTypeID:           string(s.ShiftTypeID),
		OnDutyTime:            s.OnDutyTime.Format("15:04"),
		OffDutyTime:           s.OffDutyTime.Format("15:04"),
		IsAutoShift:           s.IsAutoShift,
		HalfDayThresholdHours: s.HalfDayThresholdHours,
		HalfDayWorkingHours:   s.HalfDayWorkingHours,
		ScheduledMinutes:      s.ScheduledMinutes(),
	}
}
