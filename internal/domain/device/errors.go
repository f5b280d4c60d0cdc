package device

import "errors"

var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrDeviceDisabled   = errors.New("device is disabled")
	ErrInvalidDeviceKey = errors.New("invalid device key")
)
