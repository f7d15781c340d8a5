package rest

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nexografix/timesheet-bff/internal/domain/employee"
)

type directoryGateway struct {
	c *Client
}

func NewDirectory(c *Client) employee.Directory {
	return &directoryGateway{c: c}
}

func (g *directoryGateway) ListEmployees(ctx context.Context) ([]employee.Employee, error) {
	const path = "/userGet"

	var raw json.RawMessage
	if err := g.c.do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, err
	}
	users, err := decodeList[employee.Employee](raw, "users", "data")
	if err != nil {
		return nil, badResponse("GET "+path, err.Error())
	}
	return users, nil
}
