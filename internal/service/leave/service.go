package leave

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/employee"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/leave"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/workdays"
)

type LeaveServiceImpl struct {
	requestRepo  leave.LeaveRequestRepository
	balanceRepo  leave.LeaveBalanceRepository
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
}

func NewLeaveService(
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		requestRepo:  requestRepo,
		balanceRepo:  balanceRepo,
		employeeRepo: employeeRepo,
		clock:        clk,
	}
}

func toResponse(req leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:              req.ID,
		EmployeeID:      req.EmployeeID,
		EmployeeName:    req.EmployeeName,
		Category:        string(req.Category),
		StartDate:       req.StartDate.Format("2006-01-02"),
		EndDate:         req.EndDate.Format("2006-01-02"),
		Days:            req.Days,
		Reason:          req.Reason,
		Status:          string(req.Status),
		ApprovedBy:      req.ApprovedBy,
		RejectionReason: req.RejectionReason,
	}
	if req.ApprovedAt != nil {
		formatted := req.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &formatted
	}
	return resp
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	category := leave.Category(req.Category)

	// Calendar days, weekends included. A Friday-to-Monday request
	// costs four days.
	days := workdays.InclusiveDays(start, end)

	balance, err := s.balanceRepo.Get(ctx, req.EmployeeID, category)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if days > balance.RemainingDays {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}

	now := s.clock.Now()
	request := leave.LeaveRequest{
		ID:         uuid.New().String(),
		EmployeeID: req.EmployeeID,
		Category:   category,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return toResponse(created), nil
}

// Approve implements leave.LeaveService. The decrement happens after
// the status flip and is not re-checked against the current balance;
// the row may legitimately go negative when two requests submitted
// against the same balance are both approved.
func (s *LeaveServiceImpl) Approve(ctx context.Context, requestID, approverID string) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !request.Status.CanTransitionTo(leave.StatusApproved) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := s.clock.Now()
	request.Status = leave.StatusApproved
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now
	request.UpdatedAt = now

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	if err := s.balanceRepo.Decrement(ctx, request.EmployeeID, request.Category, request.Days); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to decrement leave balance: %w", err)
	}

	return toResponse(request), nil
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !request.Status.CanTransitionTo(leave.StatusRejected) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := s.clock.Now()
	request.Status = leave.StatusRejected
	request.ApprovedBy = &req.ApproverID
	request.RejectionReason = &req.Reason
	request.UpdatedAt = now

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return toResponse(request), nil
}

// Cancel implements leave.LeaveService. Only the requesting employee
// can cancel, and only while the request is still pending.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, requestID, employeeID string) (leave.LeaveRequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	if !request.Status.CanTransitionTo(leave.StatusCancelled) {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	request.Status = leave.StatusCancelled
	request.UpdatedAt = s.clock.Now()

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return toResponse(request), nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toResponse(req))
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}, nil
}

// GetBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	balances, err := s.balanceRepo.GetAll(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balances: %w", err)
	}

	resp := make(leave.BalanceResponse, len(balances))
	for _, b := range balances {
		resp[string(b.Category)] = b.RemainingDays
	}
	return resp, nil
}
