package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeNotMapped   = errors.New("no employee mapped to device user")
	ErrBranchTimezoneUnset = errors.New("employee branch has no timezone configured")
)
