package device

import "time"

// Device is a registered punch terminal. APIKeyHash is a bcrypt hash of the key
// the device presents when pushing punch logs.
type Device struct {
	ID         string
	Serial     string
	BranchID   string
	Name       string
	APIKeyHash string
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)
