package timesheet

import (
	"context"
)

// TimesheetGateway is the upstream timesheet collaborator.
type TimesheetGateway interface {
	// FetchWeek returns the documents of the week starting on weekStart.
	FetchWeek(ctx context.Context, weekStart string) ([]Document, error)
	// CreateDraft persists a draft and returns its identifier.
	CreateDraft(ctx context.Context, date string, tasks []Task) (string, error)
	// SubmitDraft submits a draft; the echo is nil when the server sends none.
	SubmitDraft(ctx context.Context, id string) (*Document, error)
	ListMine(ctx context.Context) ([]Document, error)
}

type ReopenGateway interface {
	RequestReopen(ctx context.Context, username, date, reason string) error
	ListReopenRequests(ctx context.Context, scope ReopenScope, username string) ([]ReopenRequest, error)
	ReviewReopenRequest(ctx context.Context, id string, decision RequestStatus) error
}

type WeekendGateway interface {
	SubmitWeekend(ctx context.Context, date, reason string) error
	ListMyWeekend(ctx context.Context) ([]WeekendRequest, error)
}
