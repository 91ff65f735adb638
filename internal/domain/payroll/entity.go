package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRecord is one payslip, keyed uniquely by (employee, month,
// year). Salary components are a snapshot of policy at generation time
// and are never recomputed retroactively.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	Month       int
	Year        int
	BasicSalary decimal.Decimal
	Allowances  Allowances
	Deductions  Deductions
	Overtime    Overtime
	Bonus       decimal.Decimal
	NetSalary   decimal.Decimal
	Status      Status
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

type Allowances struct {
	HRA   decimal.Decimal `json:"hra"`
	DA    decimal.Decimal `json:"da"`
	TA    decimal.Decimal `json:"ta"`
	Other decimal.Decimal `json:"other"`
}

func (a Allowances) Total() decimal.Decimal {
	return a.HRA.Add(a.DA).Add(a.TA).Add(a.Other)
}

type Deductions struct {
	PF        decimal.Decimal `json:"pf"`
	Tax       decimal.Decimal `json:"tax"`
	Insurance decimal.Decimal `json:"insurance"`
	Other     decimal.Decimal `json:"other"`
}

func (d Deductions) Total() decimal.Decimal {
	return d.PF.Add(d.Tax).Add(d.Insurance).Add(d.Other)
}

// Overtime stores hours and a per-hour rate for display; Amount is the
// exact minutes × per-minute rate product.
type Overtime struct {
	Hours  decimal.Decimal `json:"hours"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusProcessed Status = "processed"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known payroll status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusProcessed, StatusPaid, StatusCancelled:
		return true
	}
	return false
}
