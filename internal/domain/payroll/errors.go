package payroll

import "errors"

var (
	ErrPayrollAlreadyExists = errors.New("payroll already exists for this employee and month")
	ErrPayrollNotFound      = errors.New("payroll record not found")
)
