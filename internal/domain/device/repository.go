package device

import "context"

type DeviceRepository interface {
	GetByID(ctx context.Context, id string) (Device, error)
	GetBySerial(ctx context.Context, serial string) (Device, error)
	List(ctx context.Context) ([]Device, error)
}
