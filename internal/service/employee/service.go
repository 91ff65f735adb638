package employee

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/employee"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/leave"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	balanceRepo  leave.LeaveBalanceRepository
	clock        clock.Clock
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	clk clock.Clock,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		balanceRepo:  balanceRepo,
		clock:        clk,
	}
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:             emp.ID,
		EmployeeCode:   emp.EmployeeCode,
		FullName:       emp.FullName,
		Email:          emp.Email,
		PhoneNumber:    emp.PhoneNumber,
		DepartmentName: emp.DepartmentName,
		PositionName:   emp.PositionName,
		Salary:         emp.Salary,
		JoiningDate:    emp.JoiningDate.Format("2006-01-02"),
		IsActive:       emp.IsActive,
	}
}

// Create implements employee.EmployeeService. A new employee also gets
// the default leave entitlement rows seeded.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if _, err := s.employeeRepo.GetByCode(ctx, req.EmployeeCode); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}

	now := s.clock.Now()
	joining := now
	if req.JoiningDate != "" {
		joining, _ = time.Parse("2006-01-02", req.JoiningDate)
	}

	emp := employee.Employee{
		ID:           uuid.New().String(),
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		Salary:       req.Salary,
		JoiningDate:  joining,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.balanceRepo.Seed(ctx, created.ID, leave.DefaultEntitlements); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to seed leave balances: %w", err)
	}

	return toResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return toResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  responses,
	}, nil
}

// Update implements employee.EmployeeService. Only fields present in
// the request change.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		emp.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		emp.PhoneNumber = req.PhoneNumber
	}
	if req.DepartmentID != nil {
		emp.DepartmentID = req.DepartmentID
	}
	if req.PositionID != nil {
		emp.PositionID = req.PositionID
	}
	if req.Salary != nil {
		if req.Salary.IsNegative() {
			return employee.EmployeeResponse{}, fmt.Errorf("salary must not be negative")
		}
		emp.Salary = *req.Salary
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	emp.UpdatedAt = s.clock.Now()

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return toResponse(emp), nil
}

// Deactivate implements employee.EmployeeService. Records are kept for
// history; payroll processing just stops picking the employee up.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) error {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.employeeRepo.Deactivate(ctx, id)
}
