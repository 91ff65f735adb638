package payroll

import (
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProcessMonthRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *ProcessMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Page       int
	Limit      int
}

type PayrollResponse struct {
	ID              string          `json:"id"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    *string         `json:"employee_name,omitempty"`
	EmployeeCode    *string         `json:"employee_code,omitempty"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	Allowances      Allowances      `json:"allowances"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	Deductions      Deductions      `json:"deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Overtime        Overtime        `json:"overtime"`
	Bonus           decimal.Decimal `json:"bonus"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	Status          string          `json:"status"`
	PaidAt          *string         `json:"paid_at,omitempty"`
}

type ListPayrollResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Records    []PayrollResponse `json:"records"`
}

// ProcessMonthResponse lists the employees whose payroll generated;
// employees skipped over (already generated, inactive) are simply
// absent from the list.
type ProcessMonthResponse struct {
	Month       int      `json:"month"`
	Year        int      `json:"year"`
	Processed   int      `json:"processed"`
	EmployeeIDs []string `json:"employee_ids"`
}
