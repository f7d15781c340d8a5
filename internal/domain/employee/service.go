package employee

import "context"

type EmployeeService interface {
	// List returns the upstream directory filtered by name and role (admin)
	List(ctx context.Context, req ListEmployeesRequest) ([]EmployeeResponse, error)
}
