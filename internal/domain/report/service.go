package report

import (
	"context"
	"time"
)

type ReportService interface {
	AttendanceReport(ctx context.Context, start, end time.Time) (*AttendanceReport, error)
}
