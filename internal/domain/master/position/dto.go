package position

import (
	"time"

	"github.com/peoplemesh/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Position struct {
	ID           string
	Title        string
	DepartmentID *string
	MinSalary    *decimal.Decimal
	MaxSalary    *decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreatePositionRequest struct {
	Title        string           `json:"title"`
	DepartmentID *string          `json:"department_id"`
	MinSalary    *decimal.Decimal `json:"min_salary"`
	MaxSalary    *decimal.Decimal `json:"max_salary"`
}

func (r *CreatePositionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}

	if r.MinSalary != nil && r.MaxSalary != nil && r.MinSalary.GreaterThan(*r.MaxSalary) {
		errs = append(errs, validator.ValidationError{
			Field:   "min_salary",
			Message: "min_salary must not exceed max_salary",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePositionRequest struct {
	ID           string           `json:"-"`
	Title        *string          `json:"title"`
	DepartmentID *string          `json:"department_id"`
	MinSalary    *decimal.Decimal `json:"min_salary"`
	MaxSalary    *decimal.Decimal `json:"max_salary"`
}

type PositionResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	DepartmentID *string          `json:"department_id,omitempty"`
	MinSalary    *decimal.Decimal `json:"min_salary,omitempty"`
	MaxSalary    *decimal.Decimal `json:"max_salary,omitempty"`
}
