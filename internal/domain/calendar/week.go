package calendar

import (
	"sort"
	"time"
)

// DaysPerWeek is the fixed grid size.
const DaysPerWeek = 7

// Midnight truncates t to its calendar date, expressed as midnight UTC.
// Only the year/month/day of t in its own location are kept.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, time.UTC)
}

// AddDays moves a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD key. Longer ISO strings are cut to their date part.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

// DateKey returns the YYYY-MM-DD prefix of an ISO date or timestamp string.
func DateKey(s string) string {
	if len(s) < len(DateLayout) {
		return s
	}
	return s[:len(DateLayout)]
}

// BuildWeek produces the 7-day grid for the week containing anchor.
// today is compared by calendar date only.
func BuildWeek(anchor time.Time, holidays HolidayTable, today time.Time) [DaysPerWeek]Day {
	start := StartOfWeek(anchor)
	todayKey := FormatDate(Midnight(today))

	var week [DaysPerWeek]Day
	for i := 0; i < DaysPerWeek; i++ {
		date := AddDays(start, i)
		key := FormatDate(date)
		weekday := date.Weekday()

		day := Day{
			Date:      key,
			Weekday:   weekday,
			IsWeekend: weekday == time.Sunday || weekday == time.Saturday,
			IsToday:   key == todayKey,
			IsFuture:  key > todayKey,
		}
		if name, ok := holidays.Lookup(key); ok {
			day.IsHoliday = true
			day.Label = name
		} else if day.IsWeekend {
			day.Label = weekday.String()
		}
		week[i] = day
	}
	return week
}

// DateRange lists every date key from..to inclusive.
func DateRange(from, to time.Time) ([]string, error) {
	from, to = Midnight(from), Midnight(to)
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	var out []string
	for d := from; !d.After(to); d = AddDays(d, 1) {
		out = append(out, FormatDate(d))
	}
	return out, nil
}

// WeekendDatesAround returns the Sundays and Saturdays of the previous,
// current and next week relative to weekStart, sorted and de-duplicated.
func WeekendDatesAround(weekStart time.Time) []string {
	start := StartOfWeek(weekStart)
	seen := make(map[string]struct{})
	var out []string
	for _, offset := range []int{-7, 0, 7} {
		sunday := AddDays(start, offset)
		for _, d := range []time.Time{sunday, AddDays(sunday, 6)} {
			key := FormatDate(d)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// IsWeekendDate reports whether the date key falls on a Saturday or Sunday.
func IsWeekendDate(key string) bool {
	t, err := ParseDate(key)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
