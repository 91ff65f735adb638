package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// Create must enforce the (employee_id, date) unique constraint and
// return ErrAlreadyCheckedIn on a duplicate key, so two concurrent
// first check-ins cannot both succeed.
type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil (not an error) when no record
	// exists for the pair.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	Update(ctx context.Context, att Attendance) error

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployeeRange returns all records for one employee whose
	// date falls in [start, end], unpaginated, for summaries and
	// payroll.
	ListByEmployeeRange(ctx context.Context, employeeID string, start, end time.Time) ([]Attendance, error)

	// ListByRange returns all records in [start, end] across
	// employees, for report aggregation.
	ListByRange(ctx context.Context, start, end time.Time) ([]Attendance, error)
}
