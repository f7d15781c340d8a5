package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nexografix/timesheet-bff/internal/domain/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidayRepository_Default(t *testing.T) {
	table, err := NewHolidayRepository("").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, calendar.DefaultHolidays, table.List())
}

func TestHolidayRepository_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	content := `holidays:
  - date: 2026-01-26
    name: Republic Day
  - date: "2026-03-04"
    name: Holi
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := NewHolidayRepository(path).Load(context.Background())
	require.NoError(t, err)

	name, ok := table.Lookup("2026-03-04")
	assert.True(t, ok)
	assert.Equal(t, "Holi", name)
	assert.Len(t, table, 2)
}

func TestHolidayRepository_Missing(t *testing.T) {
	_, err := NewHolidayRepository(filepath.Join(t.TempDir(), "nope.yaml")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseHolidays_Invalid(t *testing.T) {
	_, err := ParseHolidays([]byte("holidays:\n  - date: 26/01/2026\n    name: Republic Day\n"))
	assert.ErrorIs(t, err, calendar.ErrInvalidDate)

	_, err = ParseHolidays([]byte("holidays:\n  - date: 2026-01-26\n"))
	assert.Error(t, err)

	_, err = ParseHolidays([]byte("holidays: [unterminated"))
	assert.Error(t, err)
}
