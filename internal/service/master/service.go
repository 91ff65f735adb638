package master

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/master/department"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/master/position"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) error
	DeleteDepartment(ctx context.Context, id string) error

	// Position operations
	CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error)
	GetPosition(ctx context.Context, id string) (position.PositionResponse, error)
	ListPositions(ctx context.Context) ([]position.PositionResponse, error)
	UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) error
	DeletePosition(ctx context.Context, id string) error
}

type masterServiceImpl struct {
	departmentRepo department.DepartmentRepository
	positionRepo   position.PositionRepository
	clock          clock.Clock
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	positionRepo position.PositionRepository,
	clk clock.Clock,
) MasterService {
	return &masterServiceImpl{
		departmentRepo: departmentRepo,
		positionRepo:   positionRepo,
		clock:          clk,
	}
}

// ==================== DEPARTMENT OPERATIONS ====================

func toDepartmentResponse(d department.Department) department.DepartmentResponse {
	return department.DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		ManagerID:   d.ManagerID,
	}
}

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	if err := req.Validate(); err != nil {
		return department.DepartmentResponse{}, err
	}

	now := s.clock.Now()
	entity := department.Department{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   req.ManagerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.departmentRepo.Create(ctx, entity)
	if err != nil {
		return department.DepartmentResponse{}, err
	}

	return toDepartmentResponse(created), nil
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, id string) (department.DepartmentResponse, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return department.DepartmentResponse{}, err
	}
	return toDepartmentResponse(d), nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context) ([]department.DepartmentResponse, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]department.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		responses = append(responses, toDepartmentResponse(d))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) error {
	d, err := s.departmentRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Description != nil {
		d.Description = req.Description
	}
	if req.ManagerID != nil {
		d.ManagerID = req.ManagerID
	}
	d.UpdatedAt = s.clock.Now()

	return s.departmentRepo.Update(ctx, d)
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	if _, err := s.departmentRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.departmentRepo.Delete(ctx, id)
}

// ==================== POSITION OPERATIONS ====================

func toPositionResponse(p position.Position) position.PositionResponse {
	return position.PositionResponse{
		ID:           p.ID,
		Title:        p.Title,
		DepartmentID: p.DepartmentID,
		MinSalary:    p.MinSalary,
		MaxSalary:    p.MaxSalary,
	}
}

func (s *masterServiceImpl) CreatePosition(ctx context.Context, req position.CreatePositionRequest) (position.PositionResponse, error) {
	if err := req.Validate(); err != nil {
		return position.PositionResponse{}, err
	}

	now := s.clock.Now()
	entity := position.Position{
		ID:           uuid.New().String(),
		Title:        req.Title,
		DepartmentID: req.DepartmentID,
		MinSalary:    req.MinSalary,
		MaxSalary:    req.MaxSalary,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.positionRepo.Create(ctx, entity)
	if err != nil {
		return position.PositionResponse{}, err
	}

	return toPositionResponse(created), nil
}

func (s *masterServiceImpl) GetPosition(ctx context.Context, id string) (position.PositionResponse, error) {
	p, err := s.positionRepo.GetByID(ctx, id)
	if err != nil {
		return position.PositionResponse{}, err
	}
	return toPositionResponse(p), nil
}

func (s *masterServiceImpl) ListPositions(ctx context.Context) ([]position.PositionResponse, error) {
	positions, err := s.positionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	responses := make([]position.PositionResponse, 0, len(positions))
	for _, p := range positions {
		responses = append(responses, toPositionResponse(p))
	}
	return responses, nil
}

func (s *masterServiceImpl) UpdatePosition(ctx context.Context, req position.UpdatePositionRequest) error {
	p, err := s.positionRepo.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.DepartmentID != nil {
		p.DepartmentID = req.DepartmentID
	}
	if req.MinSalary != nil {
		p.MinSalary = req.MinSalary
	}
	if req.MaxSalary != nil {
		p.MaxSalary = req.MaxSalary
	}
	if p.MinSalary != nil && p.MaxSalary != nil && p.MinSalary.GreaterThan(*p.MaxSalary) {
		return fmt.Errorf("min_salary must not exceed max_salary")
	}
	p.UpdatedAt = s.clock.Now()

	return s.positionRepo.Update(ctx, p)
}

func (s *masterServiceImpl) DeletePosition(ctx context.Context, id string) error {
	if _, err := s.positionRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.positionRepo.Delete(ctx, id)
}
