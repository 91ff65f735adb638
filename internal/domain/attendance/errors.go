package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in/check-out transition violations
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrNoCheckInFound    = errors.New("no check-in record found for today")
	ErrInvalidLocation   = errors.New("location must include a valid coordinate pair")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
