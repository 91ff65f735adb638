package payroll

import "context"

// PayrollRepository defines data access for payroll records. Create
// must enforce the (employee_id, month, year) unique constraint and
// return ErrPayrollAlreadyExists on a duplicate key, so one payslip
// per period is held by the store and not just the service pre-check.
type PayrollRepository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
