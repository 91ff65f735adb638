package department

import (
	"time"

	"github.com/peoplemesh/hrms-backend-go/internal/pkg/validator"
)

type Department struct {
	ID          string
	Name        string
	Description *string
	ManagerID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateDepartmentRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ManagerID   *string `json:"manager_id"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateDepartmentRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ManagerID   *string `json:"manager_id"`
}

type DepartmentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ManagerID   *string `json:"manager_id,omitempty"`
}
