package leave

import "errors"

var (
	ErrInsufficientBalance   = errors.New("insufficient leave balance")
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("leave request has already been processed")
	ErrBalanceNotFound       = errors.New("leave balance not found")
	ErrInvalidDateRange      = errors.New("end date must not be before start date")
)
