package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/payroll"
)

// RegisterMonthlyPayroll schedules a daily sweep that generates the
// previous month's payroll once that month has ended. Generate's
// duplicate guard makes re-runs harmless.
func RegisterMonthlyPayroll(s *Scheduler, payrollService payroll.PayrollService, logger *slog.Logger) {
	s.AddJob("monthly-payroll", 24*time.Hour, func(ctx context.Context) error {
		prev := time.Now().AddDate(0, -1, 0)

		resp, err := payrollService.ProcessMonth(ctx, payroll.ProcessMonthRequest{
			Month: int(prev.Month()),
			Year:  prev.Year(),
		})
		if err != nil {
			return fmt.Errorf("monthly payroll run failed: %w", err)
		}

		if resp.Processed > 0 {
			logger.Info("monthly payroll generated",
				slog.Int("month", resp.Month),
				slog.Int("year", resp.Year),
				slog.Int("processed", resp.Processed),
			)
		}
		return nil
	})
}
