package report

import (
	"time"

	"github.com/peoplemesh/hrms-backend-go/internal/pkg/validator"
)

type AttendanceReportRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *AttendanceReportRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeAttendanceReport aggregates one employee's attendance rows
// over the requested range. TotalDays is the row count, not the
// calendar span; AttendanceRate is 0 when no rows exist.
type EmployeeAttendanceReport struct {
	EmployeeID        string  `json:"employee_id"`
	EmployeeName      string  `json:"employee_name"`
	TotalDays         int     `json:"total_days"`
	PresentDays       int     `json:"present_days"`
	AbsentDays        int     `json:"absent_days"`
	LateDays          int     `json:"late_days"`
	TotalWorkingHours int     `json:"total_working_hours"` // accumulated in minutes
	TotalOvertime     int     `json:"total_overtime"`      // minutes
	AttendanceRate    float64 `json:"attendance_rate"`
}

type AttendanceReport struct {
	PeriodStart string                     `json:"period_start"`
	PeriodEnd   string                     `json:"period_end"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Employees   []EmployeeAttendanceReport `json:"employees"`
}
