package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FormatClock renders an instant as "hh:mm AM|PM" in loc; nil renders blank.
func FormatClock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("03:04 PM")
}

// FormatMinutes renders a duration in minutes as "H:MM". nil renders blank,
// which is distinct from "0:00".
func FormatMinutes(minutes *int) string {
	if minutes == nil {
		return ""
	}
	m := *minutes
	rem := m % 60
	if rem < 0 {
		rem = -rem
	}
	return fmt.Sprintf("%d:%02d", m/60, rem)
}

// FormatDateLabel turns a YYYY-MM-DD key into DD/MM/YYYY.
func FormatDateLabel(key string) string {
	t, err := calendar.ParseDate(key)
	if err != nil {
		return key
	}
	return t.Format("02/01/2006")
}

// FilterNames keeps names containing term (case-insensitive) and orders them
// with a locale-aware collator. The input slice is not modified.
func FilterNames(names []string, term string) []string {
	needle := strings.ToLower(strings.TrimSpace(term))

	out := make([]string, 0, len(names))
	for _, n := range names {
		if needle == "" || strings.Contains(strings.ToLower(n), needle) {
			out = append(out, n)
		}
	}

	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i], out[j]) < 0
	})
	return out
}
