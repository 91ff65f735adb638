package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/attendance"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/employee"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/payroll"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/workdays"
)

// Salary component policy. Percentages apply to basic salary; TA and
// insurance are flat amounts per month.
var (
	hraRate       = decimal.NewFromFloat(0.40)
	daRate        = decimal.NewFromFloat(0.20)
	taAmount      = decimal.NewFromInt(2000)
	pfRate        = decimal.NewFromFloat(0.12)
	taxRate       = decimal.NewFromFloat(0.10)
	insuranceFlat = decimal.NewFromInt(500)
)

// standardDayHours is the paid-hours divisor for the overtime rate,
// independent of the attendance module's work-minutes threshold.
const standardDayHours = 8

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
	logger         *slog.Logger
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		clock:          clk,
		logger:         logger,
	}
}

func toResponse(record payroll.PayrollRecord) payroll.PayrollResponse {
	resp := payroll.PayrollResponse{
		ID:              record.ID,
		EmployeeID:      record.EmployeeID,
		EmployeeName:    record.EmployeeName,
		EmployeeCode:    record.EmployeeCode,
		Month:           record.Month,
		Year:            record.Year,
		BasicSalary:     record.BasicSalary,
		Allowances:      record.Allowances,
		TotalAllowances: record.Allowances.Total(),
		Deductions:      record.Deductions,
		TotalDeductions: record.Deductions.Total(),
		Overtime:        record.Overtime,
		Bonus:           record.Bonus,
		NetSalary:       record.NetSalary,
		Status:          string(record.Status),
	}
	if record.PaidAt != nil {
		formatted := record.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &formatted
	}
	return resp
}

// overtimeMinutesFor sums recorded overtime across the month's
// attendance rows.
func (s *PayrollServiceImpl) overtimeMinutesFor(ctx context.Context, employeeID string, month, year int) (int, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)

	records, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to list attendance for payroll: %w", err)
	}

	total := 0
	for _, rec := range records {
		total += rec.OvertimeMinutes
	}
	return total, nil
}

// Generate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if _, err := s.payrollRepo.GetByEmployeePeriod(ctx, req.EmployeeID, req.Month, req.Year); err == nil {
		return payroll.PayrollResponse{}, payroll.ErrPayrollAlreadyExists
	} else if !errors.Is(err, payroll.ErrPayrollNotFound) {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to check existing payroll: %w", err)
	}

	overtimeMinutes, err := s.overtimeMinutesFor(ctx, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	basic := emp.Salary

	allowances := payroll.Allowances{
		HRA:   basic.Mul(hraRate),
		DA:    basic.Mul(daRate),
		TA:    taAmount,
		Other: decimal.Zero,
	}
	deductions := payroll.Deductions{
		PF:        basic.Mul(pfRate),
		Tax:       basic.Mul(taxRate),
		Insurance: insuranceFlat,
		Other:     decimal.Zero,
	}

	// Per-minute rate over the calendar month's paid minutes. February
	// overtime pays slightly better than January's at the same salary.
	daysInMonth := workdays.DaysInMonth(req.Year, time.Month(req.Month))
	perMinuteRate := basic.Div(decimal.NewFromInt(int64(daysInMonth * standardDayHours * 60)))
	overtime := payroll.Overtime{
		Hours:  decimal.NewFromInt(int64(overtimeMinutes)).Div(decimal.NewFromInt(60)).Round(2),
		Rate:   perMinuteRate.Mul(decimal.NewFromInt(60)).Round(2),
		Amount: perMinuteRate.Mul(decimal.NewFromInt(int64(overtimeMinutes))).Round(2),
	}

	net := basic.
		Add(allowances.Total()).
		Add(overtime.Amount).
		Sub(deductions.Total())

	now := s.clock.Now()
	record := payroll.PayrollRecord{
		ID:          uuid.New().String(),
		EmployeeID:  req.EmployeeID,
		Month:       req.Month,
		Year:        req.Year,
		BasicSalary: basic,
		Allowances:  allowances,
		Deductions:  deductions,
		Overtime:    overtime,
		Bonus:       decimal.Zero,
		NetSalary:   net,
		Status:      payroll.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return toResponse(created), nil
}

// ProcessMonth implements payroll.PayrollService. Generation failures
// for individual employees are logged and skipped; the run reports
// what it did generate.
func (s *PayrollServiceImpl) ProcessMonth(ctx context.Context, req payroll.ProcessMonthRequest) (payroll.ProcessMonthResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ProcessMonthResponse{}, err
	}

	employees, err := s.employeeRepo.GetActive(ctx)
	if err != nil {
		return payroll.ProcessMonthResponse{}, fmt.Errorf("failed to get active employees: %w", err)
	}

	resp := payroll.ProcessMonthResponse{
		Month:       req.Month,
		Year:        req.Year,
		EmployeeIDs: []string{},
	}

	for _, emp := range employees {
		_, err := s.Generate(ctx, payroll.GeneratePayrollRequest{
			EmployeeID: emp.ID,
			Month:      req.Month,
			Year:       req.Year,
		})
		if err != nil {
			if !errors.Is(err, payroll.ErrPayrollAlreadyExists) {
				s.logger.Warn("payroll generation skipped",
					slog.String("employee_id", emp.ID),
					slog.Int("month", req.Month),
					slog.Int("year", req.Year),
					slog.Any("error", err),
				)
			}
			continue
		}
		resp.Processed++
		resp.EmployeeIDs = append(resp.EmployeeIDs, emp.ID)
	}

	return resp, nil
}

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return toResponse(record), nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	records, total, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toResponse(record))
	}

	return payroll.ListPayrollResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if err := s.payrollRepo.UpdateStatus(ctx, id, payroll.StatusPaid); err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to update payroll status: %w", err)
	}

	now := s.clock.Now()
	record.Status = payroll.StatusPaid
	record.PaidAt = &now

	return toResponse(record), nil
}
