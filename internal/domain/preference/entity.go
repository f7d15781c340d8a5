package preference

import "time"

// ThemeKey is the one preference the UI itself reads.
const ThemeKey = "theme"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Preference is an opaque per-user key/value pair.
type Preference struct {
	Username  string
	Key       string
	Value     string
	UpdatedAt time.Time
}
