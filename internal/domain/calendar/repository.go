package calendar

import "context"

// HolidayRepository loads the static holiday table.
type HolidayRepository interface {
	Load(ctx context.Context) (HolidayTable, error)
}
