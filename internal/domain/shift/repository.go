package shift

import "context"

type ShiftRepository interface {
	GetByID(ctx context.Context, id string) (ShiftDefinition, error)
	List(ctx context.Context) ([]ShiftDefinition, error)
	// ListConcrete returns the non-auto shifts, the candidate set for auto-shift
	// resolution.
	ListConcrete(ctx context.Context) ([]ShiftDefinition, error)
}
