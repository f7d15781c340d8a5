package timesheet

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

// ParseClock accepts "HH:MM" (24h). Seconds, if present, are ignored.
func ParseClock(s string) (Clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock(h*60 + m), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// WorkedMinutes returns logout-login in minutes, wrapping past midnight.
// ok is false when either side is missing.
func WorkedMinutes(login, logout *Clock) (minutes int, ok bool) {
	if login == nil || logout == nil {
		return 0, false
	}
	mins := int(*logout) - int(*login)
	if mins < 0 {
		mins += minutesPerDay
	}
	return mins, true
}

// ComputeHours renders the worked duration as "Xh Ym", or "" when incomplete.
func ComputeHours(login, logout *Clock) string {
	mins, ok := WorkedMinutes(login, logout)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%dh %dm", mins/60, mins%60)
}

func clockPtr(c Clock) *Clock { return &c }

// optionalClock parses s into a *Clock; blank input yields nil.
func optionalClock(s string) (*Clock, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	c, err := ParseClock(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func clockString(c *Clock) string {
	if c == nil {
		return ""
	}
	return c.String()
}
