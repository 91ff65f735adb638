package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	UserID       *string
	EmployeeCode string
	FullName     string
	Email        string
	PhoneNumber  *string
	DepartmentID *string
	PositionID   *string
	Salary       decimal.Decimal
	JoiningDate  time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	DepartmentName *string
	PositionName   *string
}
