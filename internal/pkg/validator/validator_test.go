package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:00", "18:30", "23:59"}
	invalid := []string{"24:00", "9:00", "09:60", "0900", "", "09:00:00"}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-02-30", "01-01-2023", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidPreferenceKey(t *testing.T) {
	valid := []string{"theme", "ui.density", "sidebar_collapsed"}
	invalid := []string{"", "Theme", "1theme", "the me", "../etc"}
	for _, s := range valid {
		if !IsValidPreferenceKey(s) {
			t.Errorf("IsValidPreferenceKey(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidPreferenceKey(s) {
			t.Errorf("IsValidPreferenceKey(%q) = true, want false", s)
		}
	}
}


func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "reason", Message: "reason is required"},
		{Field: "date", Message: "date is required"},
	}
	if got := errs.Error(); got != "reason: reason is required; date: date is required" {
		t.Errorf("Error() = %q", got)
	}
	m := errs.ToMap()
	if m["date"] != "date is required" || len(m) != 2 {
		t.Errorf("ToMap() = %v", m)
	}
}
