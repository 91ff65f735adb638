package leave

import "time"

// LeaveRequest is a request for days off in one category. Days is the
// inclusive calendar count between StartDate and EndDate, computed once
// at submission and immutable afterward.
type LeaveRequest struct {
	ID              string
	EmployeeID      string
	Category        Category
	StartDate       time.Time
	EndDate         time.Time
	Days            int
	Reason          string
	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}

// Balance is one row of the leave ledger: remaining entitlement for an
// (employee, category) pair. It is mutated only by approval.
type Balance struct {
	ID            string
	EmployeeID    string
	Category      Category
	RemainingDays int
	UpdatedAt     time.Time
}

type Category string

const (
	CategoryCasual    Category = "casual"
	CategorySick      Category = "sick"
	CategoryAnnual    Category = "annual"
	CategoryMaternity Category = "maternity"
	CategoryPaternity Category = "paternity"
)

// Categories lists every leave category in ledger order.
func Categories() []Category {
	return []Category{CategoryCasual, CategorySick, CategoryAnnual, CategoryMaternity, CategoryPaternity}
}

// DefaultEntitlements are the days seeded per category when an employee
// is created.
var DefaultEntitlements = map[Category]int{
	CategoryCasual:    12,
	CategorySick:      15,
	CategoryAnnual:    20,
	CategoryMaternity: 180,
	CategoryPaternity: 15,
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	_, ok := DefaultEntitlements[c]
	return ok
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// CanTransitionTo encodes the request lifecycle: pending may move to
// any terminal state; terminal states never move again.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}
	switch next {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}
