package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, error)
	// GetByDeviceUserID maps a device-side user identity to an employee.
	GetByDeviceUserID(ctx context.Context, deviceUserID string) (Employee, error)
	// GetTimezone returns the IANA timezone of the employee's branch, used to
	// localize punch timestamps to a working day.
	GetTimezone(ctx context.Context, employeeID string) (string, error)
}

type Filter struct {
	BranchID     *string
	DepartmentID *string
	Status       *string
}
