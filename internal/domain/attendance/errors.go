package attendance

import "errors"

var (
	ErrInvalidDateRange    = errors.New("from date must not be after to date")
	ErrMalformedPunchEvent = errors.New("malformed punch event")
	ErrDateOutOfRange      = errors.New("date outside representable range")
)
