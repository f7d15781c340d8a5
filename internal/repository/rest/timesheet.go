package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/nexografix/timesheet-bff/internal/domain/timesheet"
)

type timesheetGateway struct {
	c *Client
}

func NewTimesheetGateway(c *Client) timesheet.TimesheetGateway {
	return &timesheetGateway{c: c}
}

func (g *timesheetGateway) FetchWeek(ctx context.Context, weekStart string) ([]timesheet.Document, error) {
	const path = "/timesheedetails/week"
	return g.list(ctx, path, url.Values{"start": {weekStart}})
}

func (g *timesheetGateway) ListMine(ctx context.Context) ([]timesheet.Document, error) {
	return g.list(ctx, "/timesheedetails/my", nil)
}

func (g *timesheetGateway) list(ctx context.Context, path string, query url.Values) ([]timesheet.Document, error) {
	var raw json.RawMessage
	if err := g.c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	wires, err := decodeList[timesheetWire](raw, "timesheets", "data")
	if err != nil {
		return nil, badResponse("GET "+path, err.Error())
	}
	return toDocuments(wires), nil
}

// CreateDraft returns the new timesheet id; a reply without one is an error.
func (g *timesheetGateway) CreateDraft(ctx context.Context, date string, tasks []timesheet.Task) (string, error) {
	const path = "/timesheedetails/create"
	body := struct {
		Date  string           `json:"date"`
		Tasks []timesheet.Task `json:"tasks"`
	}{Date: date, Tasks: tasks}

	var out timesheetEnvelope
	if err := g.c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return "", err
	}
	if out.Timesheet == nil || out.Timesheet.ID == "" {
		return "", badResponse("POST "+path, "missing timesheet._id")
	}
	return out.Timesheet.ID, nil
}

func (g *timesheetGateway) SubmitDraft(ctx context.Context, id string) (*timesheet.Document, error) {
	path := "/timesheedetails/submit/" + url.PathEscape(id)

	var out timesheetEnvelope
	if err := g.c.do(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return nil, err
	}
	if out.Timesheet == nil {
		return nil, nil
	}
	doc := out.Timesheet.toDocument()
	return &doc, nil
}

type reopenGateway struct {
	c *Client
}

func NewReopenGateway(c *Client) timesheet.ReopenGateway {
	return &reopenGateway{c: c}
}

func (g *reopenGateway) RequestReopen(ctx context.Context, username, date, reason string) error {
	body := map[string]string{
		"employeeUsername": username,
		"reason":           reason,
		"date":             date,
	}
	return g.c.do(ctx, http.MethodPost, "/timesheet/reopen-request", nil, body, nil)
}

func (g *reopenGateway) ListReopenRequests(ctx context.Context, scope timesheet.ReopenScope, username string) ([]timesheet.ReopenRequest, error) {
	path := "/timesheet/reopen-requests"
	var query url.Values
	if scope == timesheet.ScopeMine {
		path += "/my"
		query = url.Values{"username": {username}}
	}

	var raw json.RawMessage
	if err := g.c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return nil, err
	}
	wires, err := decodeList[reopenWire](raw, "requests", "data")
	if err != nil {
		return nil, badResponse("GET "+path, err.Error())
	}
	out := make([]timesheet.ReopenRequest, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toRequest())
	}
	return out, nil
}

func (g *reopenGateway) ReviewReopenRequest(ctx context.Context, id string, decision timesheet.RequestStatus) error {
	path := "/timesheet/reopen-review/" + url.PathEscape(id)
	body := map[string]string{"status": string(decision)}
	return g.c.do(ctx, http.MethodPut, path, nil, body, nil)
}

type weekendGateway struct {
	c *Client
}

func NewWeekendGateway(c *Client) timesheet.WeekendGateway {
	return &weekendGateway{c: c}
}

func (g *weekendGateway) SubmitWeekend(ctx context.Context, date, reason string) error {
	body := map[string]string{"date": date, "reason": reason}
	return g.c.do(ctx, http.MethodPost, "/weekend/submit", nil, body, nil)
}

func (g *weekendGateway) ListMyWeekend(ctx context.Context) ([]timesheet.WeekendRequest, error) {
	const path = "/weekend/my"

	var raw json.RawMessage
	if err := g.c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	wires, err := decodeList[weekendWire](raw, "requests", "data")
	if err != nil {
		return nil, badResponse("GET "+path, err.Error())
	}
	out := make([]timesheet.WeekendRequest, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toRequest())
	}
	return out, nil
}
