package report

import "errors"

var (
	ErrReportGenerationFailed = errors.New("failed to generate report")
	ErrArchiveFailed          = errors.New("failed to archive report")
)
