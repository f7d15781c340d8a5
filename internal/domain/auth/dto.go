package auth

import (
	"time"

	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpstreamLogin is the identity returned by the upstream login endpoint.
// Optional fields are resolved by the auth service.
type UpstreamLogin struct {
	ID                  *string    `json:"_id,omitempty"`
	Username            *string    `json:"username,omitempty"`
	Role                *string    `json:"role,omitempty"`
	Token               string     `json:"token"`
	ForceChangePassword *bool      `json:"forceChangePassword,omitempty"`
	Manager             *string    `json:"manager,omitempty"`
	LastLogin           *time.Time `json:"lastLogin,omitempty"`
}

type LoginResponse struct {
	AccessToken          string     `json:"access_token"`
	AccessTokenExpiresAt int64      `json:"access_token_expires_at"`
	Username             string     `json:"username"`
	Role                 string     `json:"role"`
	Manager              string     `json:"manager,omitempty"`
	ForceChangePassword  bool       `json:"force_change_password"`
	LastLogin            *time.Time `json:"last_login,omitempty"`
}

type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

const minPasswordLength = 6

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.NewPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password is required",
		})
	} else if len(r.NewPassword) < minPasswordLength {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new_password must be at least 6 characters long",
		})
	}
	if r.ConfirmPassword != r.NewPassword {
		errs = append(errs, validator.ValidationError{
			Field:   "confirm_password",
			Message: "confirm_password must match new_password",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
