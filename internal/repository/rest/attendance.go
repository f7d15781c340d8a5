package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nexografix/timesheet-bff/internal/domain/attendance"
)

type attendanceGateway struct {
	c *Client
}

func NewAttendanceGateway(c *Client) attendance.AttendanceGateway {
	return &attendanceGateway{c: c}
}

func (g *attendanceGateway) ListAll(ctx context.Context) ([]attendance.Record, error) {
	const path = "/attendance/all"

	var raw json.RawMessage
	if err := g.c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	wires, err := decodeList[attendanceWire](raw, "attendance", "data")
	if err != nil {
		return nil, badResponse("GET "+path, err.Error())
	}
	out := make([]attendance.Record, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toRecord())
	}
	return out, nil
}

func (g *attendanceGateway) Today(ctx context.Context) (*attendance.Record, error) {
	return g.single(ctx, http.MethodGet, "/attendance/today")
}

func (g *attendanceGateway) ClockIn(ctx context.Context) (*attendance.Record, error) {
	return g.single(ctx, http.MethodPost, "/attendance/start")
}

func (g *attendanceGateway) BreakIn(ctx context.Context) (*attendance.Record, error) {
	return g.single(ctx, http.MethodPost, "/attendance/break-in")
}

func (g *attendanceGateway) BreakOut(ctx context.Context) (*attendance.Record, error) {
	return g.single(ctx, http.MethodPost, "/attendance/break-out")
}

func (g *attendanceGateway) ClockOut(ctx context.Context) (*attendance.Record, error) {
	return g.single(ctx, http.MethodPost, "/attendance/logout")
}

// single handles the {"attendance": record|null} replies.
func (g *attendanceGateway) single(ctx context.Context, method, path string) (*attendance.Record, error) {
	var body any
	if method == http.MethodPost {
		body = struct{}{}
	}

	var out attendanceEnvelope[*attendanceWire]
	if err := g.c.do(ctx, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	if out.Attendance == nil {
		return nil, nil
	}
	rec := out.Attendance.toRecord()
	return &rec, nil
}
