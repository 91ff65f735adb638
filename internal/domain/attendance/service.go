package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations.
type AttendanceService interface {
	// CheckIn stamps today's arrival, deriving present/late from the
	// work-start policy.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut stamps today's departure and derives working and
	// overtime minutes.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// Summarize computes present/absent/late counts and the attendance
	// rate for one employee over a date range.
	Summarize(ctx context.Context, employeeID string, filter MyAttendanceFilter) (MyAttendanceResponse, error)

	// List retrieves attendance records with filters (admin/manager).
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// Get retrieves a single attendance record by ID.
	Get(ctx context.Context, id string) (AttendanceResponse, error)
}
