// Package file reads static data shipped next to the binary.
package file

import (
	"context"
	"fmt"
	"os"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"gopkg.in/yaml.v3"
)

type holidayFile struct {
	Holidays []calendar.Holiday `yaml:"holidays"`
}

type holidayRepositoryImpl struct {
	path string
}

// NewHolidayRepository reads holidays from a YAML file. An empty path means
// the built-in table.
func NewHolidayRepository(path string) calendar.HolidayRepository {
	return &holidayRepositoryImpl{path: path}
}

func (r *holidayRepositoryImpl) Load(_ context.Context) (calendar.HolidayTable, error) {
	if r.path == "" {
		return calendar.NewHolidayTable(calendar.DefaultHolidays), nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read holiday file: %w", err)
	}
	return ParseHolidays(data)
}

// ParseHolidays decodes the YAML document and checks every date.
func ParseHolidays(data []byte) (calendar.HolidayTable, error) {
	var f holidayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode holiday file: %w", err)
	}
	for i, h := range f.Holidays {
		if _, err := calendar.ParseDate(h.Date); err != nil || len(h.Date) != len(calendar.DateLayout) {
			return nil, fmt.Errorf("holiday %d: %w: %q", i, calendar.ErrInvalidDate, h.Date)
		}
		if h.Name == "" {
			return nil, fmt.Errorf("holiday %d (%s): name is required", i, h.Date)
		}
	}
	return calendar.NewHolidayTable(f.Holidays), nil
}
