package attendance

import (
	"context"
)

// AttendanceService covers the admin matrix and the caller's own clock.
type AttendanceService interface {
	// Matrix aggregates every employee's attendance over the requested range (admin)
	Matrix(ctx context.Context, req MatrixRequest) (MatrixResult, error)

	// Today returns the caller's record for today
	Today(ctx context.Context) (RecordResponse, error)

	ClockIn(ctx context.Context) (RecordResponse, error)
	BreakIn(ctx context.Context) (RecordResponse, error)
	BreakOut(ctx context.Context) (RecordResponse, error)
	ClockOut(ctx context.Context) (RecordResponse, error)
}
