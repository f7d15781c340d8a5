package employee

import (
	"context"
	"strings"

	"github.com/nexografix/timesheet-bff/internal/domain/employee"
	"github.com/nexografix/timesheet-bff/internal/domain/report"
	"github.com/nexografix/timesheet-bff/internal/domain/session"
)

type EmployeeServiceImpl struct {
	employee.Directory
}

func NewEmployeeService(directory employee.Directory) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{Directory: directory}
}

var _ employee.EmployeeService = (*EmployeeServiceImpl)(nil)

// List implements employee.EmployeeService. Results follow the same order as
// the attendance matrix rows.
func (s *EmployeeServiceImpl) List(ctx context.Context, req employee.ListEmployeesRequest) ([]employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	sess, err := session.MustFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.IsAdmin() {
		return nil, session.ErrAdminRequired
	}

	all, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string][]employee.Employee, len(all))
	names := make([]string, 0, len(all))
	for _, e := range all {
		if req.Role != "" && session.ParseRole(deref(e.Role)) != session.Role(req.Role) {
			continue
		}
		name := e.DisplayName()
		if _, seen := byName[name]; !seen {
			names = append(names, name)
		}
		byName[name] = append(byName[name], e)
	}

	out := make([]employee.EmployeeResponse, 0, len(names))
	for _, name := range report.FilterNames(names, strings.TrimSpace(req.Search)) {
		for _, e := range byName[name] {
			out = append(out, employee.ToEmployeeResponse(e))
		}
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
