package employee

import (
	"github.com/peoplemesh/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	PhoneNumber  *string         `json:"phone_number"`
	DepartmentID *string         `json:"department_id"`
	PositionID   *string         `json:"position_id"`
	Salary       decimal.Decimal `json:"salary"`
	JoiningDate  string          `json:"joining_date"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email is required",
		})
	}

	if r.Salary.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "salary",
			Message: "salary must not be negative",
		})
	}

	if r.JoiningDate != "" {
		if _, ok := validator.IsValidDate(r.JoiningDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "joining_date",
				Message: "joining_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID           string           `json:"-"`
	FullName     *string          `json:"full_name"`
	PhoneNumber  *string          `json:"phone_number"`
	DepartmentID *string          `json:"department_id"`
	PositionID   *string          `json:"position_id"`
	Salary       *decimal.Decimal `json:"salary"`
	IsActive     *bool            `json:"is_active"`
}

type EmployeeFilter struct {
	DepartmentID *string
	ActiveOnly   bool
	Page         int
	Limit        int
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	EmployeeCode   string          `json:"employee_code"`
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	PhoneNumber    *string         `json:"phone_number,omitempty"`
	DepartmentName *string         `json:"department_name,omitempty"`
	PositionName   *string         `json:"position_name,omitempty"`
	Salary         decimal.Decimal `json:"salary"`
	JoiningDate    string          `json:"joining_date"`
	IsActive       bool            `json:"is_active"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}
