package attendance

import (
	"context"
)

// AttendanceGateway is the upstream attendance collaborator.
type AttendanceGateway interface {
	// ListAll returns every attendance record visible to an admin.
	ListAll(ctx context.Context) ([]Record, error)

	// Today returns the caller's record for today, nil when none exists yet.
	Today(ctx context.Context) (*Record, error)

	ClockIn(ctx context.Context) (*Record, error)
	BreakIn(ctx context.Context) (*Record, error)
	BreakOut(ctx context.Context) (*Record, error)
	ClockOut(ctx context.Context) (*Record, error)
}
