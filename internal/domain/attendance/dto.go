package attendance

import (
	"time"

	"github.com/peoplemesh/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string   `json:"-"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Latitude == nil || r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude are required",
		})
	} else if !validator.IsValidCoordinates(*r.Latitude, *r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude must be within [-90,90] and longitude within [-180,180]",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string   `json:"-"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Latitude == nil || r.Longitude == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude and longitude are required",
		})
	} else if !validator.IsValidCoordinates(*r.Latitude, *r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "latitude must be within [-90,90] and longitude within [-180,180]",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	EmployeeID *string
	Status     *Status
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

type MyAttendanceFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

type AttendanceResponse struct {
	ID                string   `json:"id"`
	EmployeeID        string   `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	Date              string   `json:"date"`
	CheckInTime       *string  `json:"check_in_time"`
	CheckInLatitude   *float64 `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64 `json:"check_in_longitude,omitempty"`
	CheckOutTime      *string  `json:"check_out_time"`
	CheckOutLatitude  *float64 `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64 `json:"check_out_longitude,omitempty"`
	Status            string   `json:"status"`
	WorkingMinutes    int      `json:"working_minutes"`
	OvertimeMinutes   int      `json:"overtime_minutes"`
}

// Summary is the attendance-rate rollup over a date range. Absent days
// are working days without a present record; weekend days never enter
// the denominator.
type Summary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
	Rate    int `json:"rate"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}

type MyAttendanceResponse struct {
	Summary Summary                `json:"summary"`
	History ListAttendanceResponse `json:"history"`
}
