package employee

import "time"

// Employee is reference data owned by the employee directory. This service only
// reads it: schedule assignment and attendance derivation key off the IDs below.
type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	BranchID     string
	DepartmentID string
	DeviceUserID *string // identity on the punch devices, nil when not enrolled
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var StatusValues = []string{
	string(StatusActive),
	string(StatusInactive),
}
