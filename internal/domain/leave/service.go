package leave

import "context"

// LeaveService defines the leave request lifecycle and the balance
// ledger operations.
type LeaveService interface {
	// Submit validates the requested days against the current balance
	// and creates a pending request. The balance is not reserved.
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)

	// Approve transitions a pending request to approved and decrements
	// the ledger by the request's days.
	Approve(ctx context.Context, requestID, approverID string) (LeaveRequestResponse, error)

	// Reject transitions a pending request to rejected with a reason.
	// The balance is untouched.
	Reject(ctx context.Context, req RejectLeaveRequest) (LeaveRequestResponse, error)

	// Cancel transitions a pending request to cancelled. Approved
	// requests cannot be cancelled; no replenishment is modeled.
	Cancel(ctx context.Context, requestID, employeeID string) (LeaveRequestResponse, error)

	List(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)

	GetBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
}
