package attendance

import (
	"time"
)

// Attendance is the single record for an (employee, date) pair. The
// pair is unique; a second check-in for the same day is a conflict, a
// day without a record counts as absent in summaries.
type Attendance struct {
	ID                string
	EmployeeID        string
	Date              time.Time
	CheckInTime       *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutTime      *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	Status            Status
	WorkingMinutes    int
	OvertimeMinutes   int
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}

// Status is the closed set of attendance states.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
	StatusOnLeave Status = "leave"
)

// ValidStatus reports whether s is one of the known states.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusOnLeave:
		return true
	}
	return false
}

// CountsAsPresent reports whether a record with this status counts
// toward present days in summaries. A late arrival is still a worked
// day.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate
}

// CheckedIn reports whether the record has a check-in stamped.
func (a *Attendance) CheckedIn() bool {
	return a.CheckInTime != nil
}

// CheckedOut reports whether the record has a check-out stamped.
func (a *Attendance) CheckedOut() bool {
	return a.CheckOutTime != nil
}
