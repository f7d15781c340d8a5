package preference

import (
	"time"

	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
)

type SetPreferenceRequest struct {
	Key   string `json:"-"`
	Value string `json:"value"`
}

func (r *SetPreferenceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPreferenceKey(r.Key) {
		errs = append(errs, validator.ValidationError{
			Field:   "key",
			Message: "key must be lowercase letters, digits, dots or underscores",
		})
	}
	if len(r.Value) > 4096 {
		errs = append(errs, validator.ValidationError{
			Field:   "value",
			Message: "value must be at most 4096 bytes",
		})
	}
	if r.Key == ThemeKey && !validator.IsInSlice(r.Value, []string{ThemeLight, ThemeDark}) {
		errs = append(errs, validator.ValidationError{
			Field:   "value",
			Message: "theme must be either light or dark",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PreferenceResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToPreferenceResponse(p Preference) PreferenceResponse {
	return PreferenceResponse{Key: p.Key, Value: p.Value, UpdatedAt: p.UpdatedAt}
}
