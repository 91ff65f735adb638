package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/employee"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/workdays"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // keyed by employeeID|date
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func attKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := attKey(att.EmployeeID, att.Date)
	if _, exists := f.records[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	f.records[key] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	for _, att := range f.records {
		if att.ID == id {
			return att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.records[attKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	return &att, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, att attendance.Attendance) error {
	key := attKey(att.EmployeeID, att.Date)
	if _, ok := f.records[key]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[key] = att
	return nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if filter.EmployeeID != nil && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, att)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID != employeeID {
			continue
		}
		if att.Date.Before(start) || att.Date.After(end) {
			continue
		}
		out = append(out, att)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByRange(_ context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.Date.Before(start) || att.Date.After(end) {
			continue
		}
		out = append(out, att)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(ids ...string) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, id := range ids {
		f.employees[id] = employee.Employee{ID: id, IsActive: true}
	}
	return f
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.IsActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) Deactivate(_ context.Context, id string) error {
	emp, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.IsActive = false
	f.employees[id] = emp
	return nil
}

func newTestService(t *testing.T, now time.Time, repo *fakeAttendanceRepo, employees *fakeEmployeeRepo) attendance.AttendanceService {
	t.Helper()
	svc, err := NewAttendanceService(repo, employees, clock.Fixed(now), "09:00", 480)
	require.NoError(t, err)
	return svc
}

func floatPtr(v float64) *float64 { return &v }

func TestCheckInOnTime(t *testing.T) {
	// Monday 2024-06-03 08:45, before the 09:00 threshold.
	now := time.Date(2024, 6, 3, 8, 45, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc := newTestService(t, now, repo, newFakeEmployeeRepo("emp-1"))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
	assert.Equal(t, "2024-06-03", resp.Date)
	assert.NotNil(t, resp.CheckInTime)
}

func TestCheckInLate(t *testing.T) {
	// 09:10 is strictly after work start.
	now := time.Date(2024, 6, 3, 9, 10, 0, 0, time.UTC)
	svc := newTestService(t, now, newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
}

func TestCheckInExactlyAtWorkStart(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, now, newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StatusPresent), resp.Status)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	now := time.Date(2024, 6, 3, 8, 30, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	svc := newTestService(t, now, repo, newFakeEmployeeRepo("emp-1"))

	req := attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	}
	_, err := svc.CheckIn(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), req)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInMissingLocation(t *testing.T) {
	now := time.Date(2024, 6, 3, 8, 30, 0, 0, time.UTC)
	svc := newTestService(t, now, newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"))

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
	})
	assert.Error(t, err)
}

func TestCheckOutDerivesMinutes(t *testing.T) {
	checkIn := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 3, 17, 30, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	employees := newFakeEmployeeRepo("emp-1")

	inSvc := newTestService(t, checkIn, repo, employees)
	_, err := inSvc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	require.NoError(t, err)

	outSvc := newTestService(t, checkOut, repo, employees)
	resp, err := outSvc.CheckOut(context.Background(), attendance.CheckOutRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	require.NoError(t, err)
	// 8h30m worked, 30m beyond the 480-minute standard day.
	assert.Equal(t, 510, resp.WorkingMinutes)
	assert.Equal(t, 30, resp.OvertimeMinutes)
}

func TestCheckOutShortDayNoOvertime(t *testing.T) {
	checkIn := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)
	repo := newFakeAttendanceRepo()
	employees := newFakeEmployeeRepo("emp-1")

	inSvc := newTestService(t, checkIn, repo, employees)
	_, err := inSvc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	require.NoError(t, err)

	outSvc := newTestService(t, checkOut, repo, employees)
	resp, err := outSvc.CheckOut(context.Background(), attendance.CheckOutRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	require.NoError(t, err)
	assert.Equal(t, 360, resp.WorkingMinutes)
	assert.Equal(t, 0, resp.OvertimeMinutes)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	now := time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC)
	svc := newTestService(t, now, newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"))

	_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	assert.ErrorIs(t, err, attendance.ErrNoCheckInFound)
}

func TestCheckOutTwice(t *testing.T) {
	repo := newFakeAttendanceRepo()
	employees := newFakeEmployeeRepo("emp-1")
	loc := attendance.CheckOutRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	}

	inSvc := newTestService(t, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), repo, employees)
	_, err := inSvc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	require.NoError(t, err)

	outSvc := newTestService(t, time.Date(2024, 6, 3, 17, 0, 0, 0, time.UTC), repo, employees)
	_, err = outSvc.CheckOut(context.Background(), loc)
	require.NoError(t, err)

	_, err = outSvc.CheckOut(context.Background(), loc)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestSummarizeCountsAndRate(t *testing.T) {
	// Range Mon 2024-06-03 .. Fri 2024-06-07: 5 working days.
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

	repo := newFakeAttendanceRepo()
	seed := func(day time.Time, status attendance.Status) {
		in := day.Add(9 * time.Hour)
		repo.records[attKey("emp-1", day)] = attendance.Attendance{
			ID:          "att-" + day.Format("0102"),
			EmployeeID:  "emp-1",
			Date:        day,
			CheckInTime: &in,
			Status:      status,
		}
	}
	seed(start, attendance.StatusPresent)
	seed(start.AddDate(0, 0, 1), attendance.StatusLate)
	seed(start.AddDate(0, 0, 2), attendance.StatusPresent)
	seed(start.AddDate(0, 0, 3), attendance.StatusAbsent)
	// Friday: no record at all.

	svc := newTestService(t, end, repo, newFakeEmployeeRepo("emp-1"))
	resp, err := svc.Summarize(context.Background(), "emp-1", attendance.MyAttendanceFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	// Late still counts as a worked day; both the explicit absent row
	// and the missing Friday count as absent.
	assert.Equal(t, 3, resp.Summary.Present)
	assert.Equal(t, 2, resp.Summary.Absent)
	assert.Equal(t, 1, resp.Summary.Late)
	assert.Equal(t, 60, resp.Summary.Rate)
}

func TestSummarizeCountsWeekendWork(t *testing.T) {
	// Fri 2024-06-07 .. Mon 2024-06-10: two working days, one record
	// on the Saturday in between.
	start := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	sat := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	repo := newFakeAttendanceRepo()
	in := sat.Add(9 * time.Hour)
	repo.records[attKey("emp-1", sat)] = attendance.Attendance{
		ID:          "att-0608",
		EmployeeID:  "emp-1",
		Date:        sat,
		CheckInTime: &in,
		Status:      attendance.StatusPresent,
	}

	svc := newTestService(t, end, repo, newFakeEmployeeRepo("emp-1"))
	resp, err := svc.Summarize(context.Background(), "emp-1", attendance.MyAttendanceFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)

	// The worked Saturday counts as present even though it is not a
	// working day, while Friday and Monday both count as absent.
	assert.Equal(t, 1, resp.Summary.Present)
	assert.Equal(t, 2, resp.Summary.Absent)
	assert.Equal(t, 0, resp.Summary.Late)
	assert.Equal(t, 50, resp.Summary.Rate)
}

func TestSummarizeWeekendOnlyRange(t *testing.T) {
	// Sat 2024-06-01 .. Sun 2024-06-02: zero working days, rate stays 0.
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)

	svc := newTestService(t, end, newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"))
	resp, err := svc.Summarize(context.Background(), "emp-1", attendance.MyAttendanceFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Summary.Present)
	assert.Equal(t, 0, resp.Summary.Absent)
	assert.Equal(t, 0, resp.Summary.Rate)
}

func TestNewAttendanceServiceRejectsBadWorkStart(t *testing.T) {
	_, err := NewAttendanceService(newFakeAttendanceRepo(), newFakeEmployeeRepo(), clock.System(), "nine", 480)
	assert.Error(t, err)
}

func TestWorkStartBoundaryUsesDayLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	now := time.Date(2024, 6, 3, 9, 5, 0, 0, loc)
	svc := newTestService(t, now, newFakeAttendanceRepo(), newFakeEmployeeRepo("emp-1"))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		EmployeeID: "emp-1",
		Latitude:   floatPtr(-6.2),
		Longitude:  floatPtr(106.8),
	})
	require.NoError(t, err)
	// 09:05 local is late regardless of the zone offset.
	assert.Equal(t, string(attendance.StatusLate), resp.Status)
	assert.Equal(t, workdays.Truncate(now).Format("2006-01-02"), resp.Date)
}
