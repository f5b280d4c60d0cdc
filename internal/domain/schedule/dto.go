package schedule

import (
	"strings"
	"time"

	"github.com/shiftcore-hq/shiftcore-backend-go/internal/domain/shift"
	"github.com/shiftcore-hq/shiftcore-backend-go/internal/pkg/validator"
)

type AssignSchedulesRequest struct {
	EmployeeIDs        []string `json:"employee_ids"`
	ShiftID            *string  `json:"shift_id"`
	ShiftTypeID        string   `json:"shift_type_id"`
	FromDate           string   `json:"from_date"`
	ToDate             *string  `json:"to_date"`
	IsOvertimeEligible bool     `json:"is_overtime_eligible"`
	IsAutoShift        bool     `json:"is_auto_shift"`
	ReplaceExisting    bool     `json:"replace_existing"`
}

func (r *AssignSchedulesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EmployeeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_ids",
			Message: "at least one employee is required",
		})
	}
	for _, id := range r.EmployeeIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "employee_ids",
				Message: "employee IDs must not be empty",
			})
			break
		}
	}

	if !r.IsAutoShift && (r.ShiftID == nil || validator.IsEmpty(*r.ShiftID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required unless is_auto_shift is true",
		})
	}

	if !validator.IsEmpty(r.ShiftTypeID) && !validator.IsInSlice(r.ShiftTypeID, shift.ShiftTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_type_id",
			Message: "shift_type_id must be one of: " + strings.Join(shift.ShiftTypeValues, ", "),
		})
	}

	if validator.IsEmpty(r.FromDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_date",
			Message: "from_date is required",
		})
	}

	var from, to time.Time
	var fromOK, toOK bool
	if !validator.IsEmpty(r.FromDate) {
		if from, fromOK = validator.IsValidDate(r.FromDate); !fromOK {
			errs = append(errs, validator.ValidationError{
				Field:   "from_date",
				Message: "from_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.ToDate != nil && !validator.IsEmpty(*r.ToDate) {
		if to, toOK = validator.IsValidDate(*r.ToDate); !toOK {
			errs = append(errs, validator.ValidationError{
				Field:   "to_date",
				Message: "to_date must be in YYYY-MM-DD format",
			})
		}
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

// FromDateValue parses the validated from_date.
func (r *AssignSchedulesRequest) FromDateValue() time.Time {
	t, _ := time.Parse("2006-01-02", r.FromDate)
	return t
}

// ToDateValue parses the validated to_date, nil when open-ended.
func (r *AssignSchedulesRequest) ToDateValue() *time.Time {
	if r.ToDate == nil || *r.ToDate == "" {
		return nil
	}
	t, _ := time.Parse("2006-01-02", *r.ToDate)
	return &t
}

type ScheduleAssignmentResponse struct {
	ID                 string  `json:"id"`
	EmployeeID         string  `json:"employee_id"`
	ShiftID            *string `json:"shift_id,omitempty"`
	ShiftTypeID        string  `json:"shift_type_id"`
	FromDate           string  `json:"from_date"`
	ToDate             *string `json:"to_date,omitempty"`
	IsOvertimeEligible bool    `json:"is_overtime_eligible"`
	IsAutoShift        bool    `json:"is_auto_shift"`
	SupersededAt       *string `json:"superseded_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// AssignmentFailure reports why one employee in a batch could not be assigned.
// Failures never roll back the successes of other employees.
type AssignmentFailure struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

type AssignmentBatchResult struct {
	Assigned []ScheduleAssignmentResponse `json:"assigned"`
	Failures []AssignmentFailure          `json:"failures"`
}

type ScheduleStateResponse struct {
	EmployeeID string                       `json:"employee_id"`
	Date       string                       `json:"date"`
	State      string                       `json:"state"`
	Assignment *ScheduleAssignmentResponse  `json:"assignment,omitempty"`
	Overlaps   []ScheduleAssignmentResponse `json:"overlaps,omitempty"`
}

type ResolveScheduleRequest struct {
	EmployeeID string
	Date       string
}

func (r *ResolveScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if !validator.IsEmpty(r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeePickerFilter struct {
	Mode         string
	BranchID     *string
	DepartmentID *string
}

func (f *EmployeePickerFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Mode == "" {
		f.Mode = string(SelectAll)
	}
	if !validator.IsInSlice(f.Mode, SelectionModeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule_state",
			Message: "schedule_state must be one of: " + strings.Join(SelectionModeValues, ", "),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// MapAssignmentToResponse converts a ScheduleAssignment entity to its response shape.
func MapAssignmentToResponse(a ScheduleAssignment) ScheduleAssignmentResponse {
	resp := ScheduleAssignmentResponse{
		ID:                 a.ID,
		EmployeeID:         a.EmployeeID,
		ShiftID:            a.ShiftID,
		ShiftTypeID:        string(a.ShiftTypeID),
		FromDate:           a.FromDate.Format("2006-01-02"),
		IsOvertimeEligible: a.IsOvertimeEligible,
		IsAutoShift:        a.IsAutoShift,
		CreatedAt:          a.CreatedAt.Format(time.RFC3339),
	}
	if a.ToDate != nil {
		to := a.ToDate.Format("2006-01-02")
		resp.ToDate = &to
	}
	if a.SupersededAt != nil {
		at := a.SupersededAt.Format(time.RFC3339)
		resp.SupersededAt = &at
	}
	return resp
}
