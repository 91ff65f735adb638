package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/employee"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
)

type fakeAttendanceRepo struct {
	records []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	f.records = append(f.records, att)
	return att, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, _ string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) List(_ context.Context, _ attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if att.EmployeeID == employeeID && !att.Date.Before(start) && !att.Date.After(end) {
			out = append(out, att)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByRange(_ context.Context, start, end time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, att := range f.records {
		if !att.Date.Before(start) && !att.Date.After(end) {
			out = append(out, att)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	names map[string]string
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	name, ok := f.names[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, FullName: name, IsActive: true}, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) GetActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) Deactivate(_ context.Context, _ string) error { return nil }

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceReportAggregatesPerEmployee(t *testing.T) {
	atts := &fakeAttendanceRepo{records: []attendance.Attendance{
		{EmployeeID: "emp-1", Date: day(3), Status: attendance.StatusPresent, WorkingMinutes: 480},
		{EmployeeID: "emp-1", Date: day(4), Status: attendance.StatusLate, WorkingMinutes: 510, OvertimeMinutes: 30},
		{EmployeeID: "emp-1", Date: day(5), Status: attendance.StatusAbsent},
		{EmployeeID: "emp-2", Date: day(3), Status: attendance.StatusPresent, WorkingMinutes: 450},
		// Outside the range, excluded.
		{EmployeeID: "emp-1", Date: day(28), Status: attendance.StatusPresent, WorkingMinutes: 480},
	}}
	employees := &fakeEmployeeRepo{names: map[string]string{
		"emp-1": "Ayu Lestari",
		"emp-2": "Budi Santoso",
	}}

	now := time.Date(2024, 6, 8, 9, 0, 0, 0, time.UTC)
	svc := NewReportService(atts, employees, clock.Fixed(now))

	result, err := svc.AttendanceReport(context.Background(), day(1), day(7))
	require.NoError(t, err)
	require.Len(t, result.Employees, 2)

	first := result.Employees[0]
	assert.Equal(t, "emp-1", first.EmployeeID)
	assert.Equal(t, "Ayu Lestari", first.EmployeeName)
	assert.Equal(t, 3, first.TotalDays)
	assert.Equal(t, 1, first.PresentDays)
	assert.Equal(t, 1, first.AbsentDays)
	assert.Equal(t, 1, first.LateDays)
	assert.Equal(t, 990, first.TotalWorkingHours)
	assert.Equal(t, 30, first.TotalOvertime)
	assert.InDelta(t, 33.33, first.AttendanceRate, 0.001)

	second := result.Employees[1]
	assert.Equal(t, "emp-2", second.EmployeeID)
	assert.Equal(t, 1, second.TotalDays)
	assert.Equal(t, float64(100), second.AttendanceRate)

	assert.Equal(t, "2024-06-01", result.PeriodStart)
	assert.Equal(t, "2024-06-07", result.PeriodEnd)
	assert.Equal(t, now, result.GeneratedAt)
}

func TestAttendanceReportLateIsNotPresent(t *testing.T) {
	atts := &fakeAttendanceRepo{records: []attendance.Attendance{
		{EmployeeID: "emp-1", Date: day(3), Status: attendance.StatusLate, WorkingMinutes: 480},
	}}
	employees := &fakeEmployeeRepo{names: map[string]string{"emp-1": "Ayu Lestari"}}

	svc := NewReportService(atts, employees, clock.Fixed(day(8)))
	result, err := svc.AttendanceReport(context.Background(), day(1), day(7))
	require.NoError(t, err)
	require.Len(t, result.Employees, 1)

	// Late days are tallied on their own; the rate tracks on-time
	// presence only.
	first := result.Employees[0]
	assert.Equal(t, 1, first.TotalDays)
	assert.Equal(t, 0, first.PresentDays)
	assert.Equal(t, 0, first.AbsentDays)
	assert.Equal(t, 1, first.LateDays)
	assert.Equal(t, float64(0), first.AttendanceRate)
}

func TestAttendanceReportEmptyRange(t *testing.T) {
	svc := NewReportService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{}, clock.System())

	result, err := svc.AttendanceReport(context.Background(), day(1), day(7))
	require.NoError(t, err)
	assert.Empty(t, result.Employees)
}
