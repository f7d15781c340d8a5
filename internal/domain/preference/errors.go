package preference

import "errors"

var (
	ErrPreferenceNotFound = errors.New("preference not found")
)
