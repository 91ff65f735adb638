package leave

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peoplemesh/hrms-backend-go/internal/domain/employee"
	"github.com/peoplemesh/hrms-backend-go/internal/domain/leave"
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/clock"
)

type fakeRequestRepo struct {
	requests map[string]leave.LeaveRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeRequestRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) List(_ context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if filter.EmployeeID != nil && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRequestRepo) Update(_ context.Context, req leave.LeaveRequest) error {
	if _, ok := f.requests[req.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	f.requests[req.ID] = req
	return nil
}

type fakeBalanceRepo struct {
	balances map[string]int // employeeID|category -> remaining
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]int)}
}

func balKey(employeeID string, category leave.Category) string {
	return employeeID + "|" + string(category)
}

func (f *fakeBalanceRepo) Seed(_ context.Context, employeeID string, entitlements map[leave.Category]int) error {
	for category, days := range entitlements {
		f.balances[balKey(employeeID, category)] = days
	}
	return nil
}

func (f *fakeBalanceRepo) Get(_ context.Context, employeeID string, category leave.Category) (leave.Balance, error) {
	remaining, ok := f.balances[balKey(employeeID, category)]
	if !ok {
		return leave.Balance{}, leave.ErrBalanceNotFound
	}
	return leave.Balance{
		EmployeeID:    employeeID,
		Category:      category,
		RemainingDays: remaining,
	}, nil
}

func (f *fakeBalanceRepo) GetAll(_ context.Context, employeeID string) ([]leave.Balance, error) {
	var out []leave.Balance
	for _, category := range leave.Categories() {
		remaining, ok := f.balances[balKey(employeeID, category)]
		if !ok {
			continue
		}
		out = append(out, leave.Balance{
			EmployeeID:    employeeID,
			Category:      category,
			RemainingDays: remaining,
		})
	}
	return out, nil
}

func (f *fakeBalanceRepo) Decrement(_ context.Context, employeeID string, category leave.Category, days int) error {
	key := balKey(employeeID, category)
	if _, ok := f.balances[key]; !ok {
		return leave.ErrBalanceNotFound
	}
	f.balances[key] -= days
	return nil
}

type fakeEmployeeRepo struct {
	ids map[string]bool
}

func newFakeEmployeeRepo(ids ...string) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{ids: make(map[string]bool)}
	for _, id := range ids {
		f.ids[id] = true
	}
	return f
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.ids[emp.ID] = true
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if !f.ids[id] {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, IsActive: true}, nil
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

func newTestLeaveService(balances *fakeBalanceRepo, requests *fakeRequestRepo) leave.LeaveService {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	return NewLeaveService(requests, balances, newFakeEmployeeRepo("emp-1", "emp-2"), clock.Fixed(now))
}

func seedBalances(t *testing.T, balances *fakeBalanceRepo, employeeID string) {
	t.Helper()
	require.NoError(t, balances.Seed(context.Background(), employeeID, leave.DefaultEntitlements))
}

func TestSubmitComputesInclusiveDays(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	resp, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-14", // Friday
		EndDate:    "2024-06-17", // Monday
		Reason:     "family event",
	})
	require.NoError(t, err)
	// Weekend days count: Fri..Mon is four calendar days.
	assert.Equal(t, 4, resp.Days)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
}

func TestSubmitSingleDay(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	resp, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "sick",
		StartDate:  "2024-06-12",
		EndDate:    "2024-06-12",
		Reason:     "fever",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Days)
}

func TestSubmitInsufficientBalance(t *testing.T) {
	balances := newFakeBalanceRepo()
	balances.balances[balKey("emp-1", leave.CategoryCasual)] = 3
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	_, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-14", // 5 days against a balance of 3
		Reason:     "trip",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestSubmitExactBalanceAllowed(t *testing.T) {
	balances := newFakeBalanceRepo()
	balances.balances[balKey("emp-1", leave.CategoryCasual)] = 5
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	resp, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-14",
		Reason:     "trip",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Days)
}

func TestSubmitInvalidCategory(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	_, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "sabbatical",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-11",
		Reason:     "rest",
	})
	assert.Error(t, err)
}

func TestSubmitEndBeforeStart(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	_, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-14",
		EndDate:    "2024-06-10",
		Reason:     "trip",
	})
	assert.Error(t, err)
}

func TestApproveDecrementsBalance(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	requests := newFakeRequestRepo()
	svc := newTestLeaveService(balances, requests)

	submitted, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-14",
		Reason:     "trip",
	})
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), submitted.ID, "mgr-1")
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "mgr-1", *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	// 12 casual days minus the 5 approved.
	balance, err := svc.GetBalance(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 7, balance["casual"])
}

func TestApproveTwice(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	submitted, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-11",
		Reason:     "trip",
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), submitted.ID, "mgr-1")
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), submitted.ID, "mgr-1")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestApproveBothOfTwoPendingRequests(t *testing.T) {
	// Two pending requests validated against the same balance may both
	// be approved; the ledger goes negative rather than re-checking.
	balances := newFakeBalanceRepo()
	balances.balances[balKey("emp-1", leave.CategoryCasual)] = 5
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	first, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-13",
		Reason:     "trip",
	})
	require.NoError(t, err)

	second, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-17",
		EndDate:    "2024-06-20",
		Reason:     "another trip",
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), first.ID, "mgr-1")
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), second.ID, "mgr-1")
	require.NoError(t, err)

	balance, err := svc.GetBalance(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, -3, balance["casual"])
}

func TestRejectLeavesBalanceUntouched(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	submitted, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "annual",
		StartDate:  "2024-07-01",
		EndDate:    "2024-07-05",
		Reason:     "holiday",
	})
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), leave.RejectLeaveRequest{
		ID:         submitted.ID,
		ApproverID: "mgr-1",
		Reason:     "blackout period",
	})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusRejected), rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "blackout period", *rejected.RejectionReason)

	balance, err := svc.GetBalance(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 20, balance["annual"])
}

func TestRejectRequiresReason(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	_, err := svc.Reject(context.Background(), leave.RejectLeaveRequest{
		ID:         "whatever",
		ApproverID: "mgr-1",
	})
	assert.Error(t, err)
}

func TestCancelPendingRequest(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	submitted, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-11",
		Reason:     "errand",
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), submitted.ID, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)
}

func TestCancelApprovedRequest(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	submitted, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-11",
		Reason:     "errand",
	})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), submitted.ID, "mgr-1")
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), submitted.ID, "emp-1")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestCancelSomeoneElsesRequest(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	submitted, err := svc.Submit(context.Background(), leave.SubmitLeaveRequest{
		EmployeeID: "emp-1",
		Category:   "casual",
		StartDate:  "2024-06-10",
		EndDate:    "2024-06-11",
		Reason:     "errand",
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), submitted.ID, "emp-2")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestGetBalanceDefaults(t *testing.T) {
	balances := newFakeBalanceRepo()
	seedBalances(t, balances, "emp-1")
	svc := newTestLeaveService(balances, newFakeRequestRepo())

	balance, err := svc.GetBalance(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, leave.BalanceResponse{
		"casual":    12,
		"sick":      15,
		"annual":    20,
		"maternity": 180,
		"paternity": 15,
	}, balance)
}
