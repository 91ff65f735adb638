package payroll

import "context"

// PayrollService defines payslip generation and retrieval.
type PayrollService interface {
	// Generate computes and persists the payslip for one employee and
	// period. Fails with ErrPayrollAlreadyExists when a record for the
	// (employee, month, year) key exists.
	Generate(ctx context.Context, req GeneratePayrollRequest) (PayrollResponse, error)

	// ProcessMonth generates payroll for every active employee,
	// skipping employees whose generation fails. Partial success is
	// the contract, not a fault.
	ProcessMonth(ctx context.Context, req ProcessMonthRequest) (ProcessMonthResponse, error)

	Get(ctx context.Context, id string) (PayrollResponse, error)

	List(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)

	// MarkPaid transitions a record to paid.
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)
}
