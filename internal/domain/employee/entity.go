package employee

import "strings"

// UnknownName is shown when an upstream user carries no usable identity.
const UnknownName = "Unknown"

// Employee is a user record as returned by the upstream directory.
// Every identity field is optional upstream.
type Employee struct {
	ID       string  `json:"_id"`
	Username *string `json:"username,omitempty"`
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	Manager  *string `json:"manager,omitempty"`
}

// DisplayName resolves username, then name, then email, then "Unknown".
func (e Employee) DisplayName() string {
	for _, v := range []*string{e.Username, e.Name, e.Email} {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return UnknownName
}
