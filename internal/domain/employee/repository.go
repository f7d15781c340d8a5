package employee

import "context"

// Directory lists every employee known to the upstream.
type Directory interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
}
