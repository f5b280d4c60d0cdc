package attendance

import (
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/validator"
)

type AttendanceReportRequest struct {
	EmployeeID string
	FromDate   string
	ToDate     string
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	var from, to time.Time
	var fromOK, toOK bool
	if validator.IsEmpty(r.FromDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date is required",
		})
	} else if from, fromOK = validator.IsValidDate(r.FromDate); !fromOK {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date must be in YYYY-MM-DD format",
		})
	}
	if validator.IsEmpty(r.ToDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date is required",
		})
	} else if to, toOK = validator.IsValidDate(r.ToDate); !toOK {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must be in YYYY-MM-DD format",
		})
	}
	if fromOK && toOK && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "to_date",
			Message: "to_date must not be before from_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchPairResponse struct {
	In  *string `json:"in,omitempty"`
	Out *string `json:"out,omitempty"`
}

type ShiftSnapshotResponse struct {
	ShiftID      string `json:"shift_id"`
	Name         string `json:"name"`
	ShiftTypeID  string `json:"shift_type_id"`
	OnDutyTime   string `json:"on_duty_time"`
	OffDutyTime  string `json:"off_duty_time"`
	AutoResolved bool   `json:"auto_resolved"`
}

type DayAttendanceRecordResponse struct {
	EmployeeID        string                 `json:"employee_id"`
	Date              string                 `json:"date"`
	ScheduleState     string                 `json:"schedule_state"`
	Shift             *ShiftSnapshotResponse `json:"shift,omitempty"`
	Pairs             []PunchPairResponse    `json:"pairs"`
	IncompletePair    bool                   `json:"incomplete_pair"`
	LateComingMinutes int                    `json:"late_coming_minutes"`
	EarlyGoingMinutes int                    `json:"early_going_minutes"`
	TotalMinutes      int                    `json:"total_minutes"`
	OvertimeMinutes   int                    `json:"overtime_minutes"`
	Status            string                 `json:"status"`
	Warnings          []string               `json:"warnings,omitempty"`
}

// IngestPunchRow is one raw row pushed by a device or pulled from the vendor
// cloud. Timestamps arrive as strings; malformed rows are skipped, not fatal.
type IngestPunchRow struct {
	DeviceUserID   string `json:"device_user_id"`
	Timestamp      string `json:"timestamp"`
	DeviceFunction string `json:"device_function"`
}

type IngestPunchesRequest struct {
	Rows []IngestPunchRow `json:"rows"`
}

func (r *IngestPunchesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Rows) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "rows",
			Message: "at least one row is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type IngestPunchesResponse struct {
	Accepted int      `json:"accepted"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

func formatPunchTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// MapRecordToResponse converts a DayAttendanceRecord to its response shape.
func MapRecordToResponse(rec DayAttendanceRecord) DayAttendanceRecordResponse {
	resp := DayAttendanceRecordResponse{
		EmployeeID:        rec.EmployeeID,
		Date:              rec.Date.Format("2006-01-02"),
		ScheduleState:     rec.ScheduleState,
		Pairs:             make([]PunchPairResponse, 0, len(rec.Pairs)),
		IncompletePair:    rec.IncompletePair,
		LateComingMinutes: rec.LateComingMinutes,
		EarlyGoingMinutes: rec.EarlyGoingMinutes,
		TotalMinutes:      rec.TotalMinutes,
		OvertimeMinutes:   rec.OvertimeMinutes,
		Status:            string(rec.Status),
		Warnings:          rec.Warnings,
	}
	if rec.Shift != nil {
		resp.Shift = &ShiftSnapshotResponse{
			ShiftID:      rec.Shift.ShiftID,
			Name:         rec.Shift.Name,
			ShiftTypeID:  string(rec.Shift.ShiftTypeID),
			OnDutyTime:   rec.Shift.OnDutyTime.Format("15:04"),
			OffDutyTime:  rec.Shift.OffDutyTime.Format("15:04"),
			AutoResolved: rec.Shift.AutoResolved,
		}
	}
	for _, p := range rec.Pairs {
		resp.Pairs = append(resp.Pairs, PunchPairResponse{
			In:  formatPunchTime(p.In),
			Out: formatPunchTime(p.Out),
		})
	}
	return resp
}
