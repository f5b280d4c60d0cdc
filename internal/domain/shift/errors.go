package shift

import "errors"

var (
	ErrShiftNotFound    = errors.New("shift not found")
	ErrInvalidShiftType = errors.New("invalid shift type")
)
