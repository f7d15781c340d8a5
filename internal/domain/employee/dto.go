package employee

import (
	"github.com/nexografix/timesheet-bff/internal/pkg/validator"
)

type ListEmployeesRequest struct {
	Search string `json:"search"`
	Role   string `json:"role"`
}

func (r *ListEmployeesRequest) Validate() error {
	if r.Role != "" && !validator.IsInSlice(r.Role, []string{"admin", "employee"}) {
		return validator.Single("role", "role must be either admin or employee")
	}
	return nil
}

type EmployeeResponse struct {
	ID          string  `json:"id,omitempty"`
	DisplayName string  `json:"display_name"`
	Username    *string `json:"username"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Role        string  `json:"role"`
	Manager     *string `json:"manager"`
}

// ToEmployeeResponse fills Role with "employee" when the upstream omits it.
func ToEmployeeResponse(e Employee) EmployeeResponse {
	role := "employee"
	if e.Role != nil && *e.Role != "" {
		role = *e.Role
	}
	return EmployeeResponse{
		ID:          e.ID,
		DisplayName: e.DisplayName(),
		Username:    e.Username,
		Name:        e.Name,
		Email:       e.Email,
		Role:        role,
		Manager:     e.Manager,
	}
}
