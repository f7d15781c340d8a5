package calendar

import (
	"sort"
	"time"
)

// DateLayout is the canonical calendar date key used across the service.
const DateLayout = "2006-01-02"

// Holiday is one entry of the static holiday table.
type Holiday struct {
	Date string `json:"date" yaml:"date"`
	Name string `json:"name" yaml:"name"`
}

// HolidayTable maps a date key to the holiday name.
type HolidayTable map[string]string

// DefaultHolidays is used when no holiday file is configured.
var DefaultHolidays = []Holiday{
	{Date: "2025-01-26", Name: "Republic Day"},
	{Date: "2025-08-15", Name: "Independence Day"},
	{Date: "2025-10-02", Name: "Gandhi Jayanti"},
	{Date: "2025-12-25", Name: "Christmas"},
}

func NewHolidayTable(holidays []Holiday) HolidayTable {
	table := make(HolidayTable, len(holidays))
	for _, h := range holidays {
		table[h.Date] = h.Name
	}
	return table
}

// Lookup returns the holiday name for an exact date match.
func (t HolidayTable) Lookup(date string) (string, bool) {
	name, ok := t[date]
	return name, ok
}

// List returns the table ordered by date.
func (t HolidayTable) List() []Holiday {
	out := make([]Holiday, 0, len(t))
	for date, name := range t {
		out = append(out, Holiday{Date: date, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Day is one classified calendar day of a week grid.
type Day struct {
	Date      string
	Weekday   time.Weekday
	IsHoliday bool
	IsWeekend bool
	IsToday   bool
	IsFuture  bool
	Label     string
}
