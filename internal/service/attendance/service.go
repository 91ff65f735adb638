package attendance

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/employee"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/workdays"
)

const defaultPageLimit = 20

type AttendanceServiceImpl struct {
	attendanceRepo      attendance.AttendanceRepository
	employeeRepo        employee.EmployeeRepository
	clock               clock.Clock
	workStartHour       int
	workStartMinute     int
	standardWorkMinutes int
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	workStartTime string,
	standardWorkMinutes int,
) (attendance.AttendanceService, error) {
	hour, minute, err := parseWorkStart(workStartTime)
	if err != nil {
		return nil, err
	}
	return &AttendanceServiceImpl{
		attendanceRepo:      attendanceRepo,
		employeeRepo:        employeeRepo,
		clock:               clk,
		workStartHour:       hour,
		workStartMinute:     minute,
		standardWorkMinutes: standardWorkMinutes,
	}, nil
}

func parseWorkStart(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid work start time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid work start hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid work start minute in %q", s)
	}
	return hour, minute, nil
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

func toResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                att.ID,
		EmployeeID:        att.EmployeeID,
		EmployeeName:      att.EmployeeName,
		Date:              att.Date.Format("2006-01-02"),
		CheckInTime:       timePtrToString(att.CheckInTime),
		CheckInLatitude:   att.CheckInLatitude,
		CheckInLongitude:  att.CheckInLongitude,
		CheckOutTime:      timePtrToString(att.CheckOutTime),
		CheckOutLatitude:  att.CheckOutLatitude,
		CheckOutLongitude: att.CheckOutLongitude,
		Status:            string(att.Status),
		WorkingMinutes:    att.WorkingMinutes,
		OvertimeMinutes:   att.OvertimeMinutes,
	}
}

// workStartOn returns the work-start instant for the given day, in that
// day's location.
func (s *AttendanceServiceImpl) workStartOn(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		s.workStartHour, s.workStartMinute, 0, 0, day.Location())
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	today := workdays.Truncate(now)

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil && existing.CheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	// Strictly after work start counts as late; arriving exactly on the
	// minute is on time.
	status := attendance.StatusPresent
	if now.After(s.workStartOn(now)) {
		status = attendance.StatusLate
	}

	att := attendance.Attendance{
		ID:               uuid.New().String(),
		EmployeeID:       req.EmployeeID,
		Date:             today,
		CheckInTime:      &now,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.attendanceRepo.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return toResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := s.clock.Now()
	today := workdays.Truncate(now)

	att, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if att == nil || !att.CheckedIn() {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckInFound
	}
	if att.CheckedOut() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	workingMinutes := int(math.Floor(now.Sub(*att.CheckInTime).Minutes()))
	if workingMinutes < 0 {
		workingMinutes = 0
	}
	overtimeMinutes := workingMinutes - s.standardWorkMinutes
	if overtimeMinutes < 0 {
		overtimeMinutes = 0
	}

	att.CheckOutTime = &now
	att.CheckOutLatitude = req.Latitude
	att.CheckOutLongitude = req.Longitude
	att.WorkingMinutes = workingMinutes
	att.OvertimeMinutes = overtimeMinutes
	att.UpdatedAt = now

	if err := s.attendanceRepo.Update(ctx, *att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return toResponse(*att), nil
}

// Summarize implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, employeeID string, filter attendance.MyAttendanceFilter) (attendance.MyAttendanceResponse, error) {
	now := s.clock.Now()

	// Default to the current month when the caller gives no range.
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := workdays.Truncate(now)
	if filter.StartDate != nil {
		start = workdays.Truncate(*filter.StartDate)
	}
	if filter.EndDate != nil {
		end = workdays.Truncate(*filter.EndDate)
	}

	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, start, end)
	if err != nil {
		return attendance.MyAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	// Present days come from the records themselves, wherever they
	// fall; a worked Saturday still counts. Absent days are working
	// days with no present record, so the two sets can overlap the
	// calendar differently.
	var summary attendance.Summary
	presentDates := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if rec.Status.CountsAsPresent() {
			presentDates[rec.Date.Format("2006-01-02")] = struct{}{}
		}
		if rec.Status == attendance.StatusLate {
			summary.Late++
		}
	}
	summary.Present = len(presentDates)

	days := workdays.Between(start, end)
	for _, day := range days {
		if _, ok := presentDates[day.Format("2006-01-02")]; !ok {
			summary.Absent++
		}
	}
	if len(days) > 0 {
		summary.Rate = int(math.Round(float64(summary.Present) / float64(len(days)) * 100))
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}

	history := paginate(records, page, limit)

	return attendance.MyAttendanceResponse{
		Summary: summary,
		History: history,
	}, nil
}

func paginate(records []attendance.Attendance, page, limit int) attendance.ListAttendanceResponse {
	total := int64(len(records))
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	offset := (page - 1) * limit
	if offset > len(records) {
		offset = len(records)
	}
	endIdx := offset + limit
	if endIdx > len(records) {
		endIdx = len(records)
	}

	responses := make([]attendance.AttendanceResponse, 0, endIdx-offset)
	for _, rec := range records[offset:endIdx] {
		responses = append(responses, toResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageLimit
	}

	records, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: responses,
	}, nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toResponse(att), nil
}
