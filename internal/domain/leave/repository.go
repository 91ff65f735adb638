package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, req LeaveRequest) error
}

// LeaveBalanceRepository is the ledger. Decrement applies the whole
// UPDATE in one statement so concurrent approvals serialize on the
// row. It does not enforce a floor; approval never re-checks the
// balance, so the remaining days can go negative.
type LeaveBalanceRepository interface {
	// Seed inserts the default entitlement rows for a new employee.
	Seed(ctx context.Context, employeeID string, entitlements map[Category]int) error

	Get(ctx context.Context, employeeID string, category Category) (Balance, error)

	GetAll(ctx context.Context, employeeID string) ([]Balance, error)

	// Decrement subtracts days from the (employee, category) row.
	Decrement(ctx context.Context, employeeID string, category Category, days int) error
}
