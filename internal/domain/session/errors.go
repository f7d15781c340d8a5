package session

import "errors"

var (
	ErrSessionNotFound       = errors.New("session not found")
	ErrSessionExpired        = errors.New("session expired")
	ErrAdminRequired         = errors.New("admin privilege required")
	ErrPasswordChangePending = errors.New("password change required before continuing")
)
