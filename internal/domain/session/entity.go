package session

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// Session is the explicit replacement for the browser-stored user object.
// It is created at login and removed at logout or expiry.
type Session struct {
	ID                  string
	UserID              string
	Username            string
	Role                Role
	Manager             string
	UpstreamToken       string
	ForceChangePassword bool
	LastLogin           *time.Time
	CreatedAt           time.Time
	ExpiresAt           time.Time
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ManagerLabel is what the week grid shows when no manager is assigned.
func (s Session) ManagerLabel() string {
	if s.Manager == "" {
		return "—"
	}
	return s.Manager
}

// ParseRole maps an upstream role; anything but admin is an employee.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), string(RoleAdmin)) {
		return RoleAdmin
	}
	return RoleEmployee
}
