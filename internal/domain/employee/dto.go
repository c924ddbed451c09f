package employee

import (
	"github.com/apexhr/hrm-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode   string           `json:"employee_code"`
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	PhoneNumber    *string          `json:"phone_number,omitempty"`
	HireDate       string           `json:"hire_date"`
	EmploymentType string           `json:"employment_type"`
	DepartmentID   *string          `json:"department_id,omitempty"`
	OfficeID       *string          `json:"office_id,omitempty"`
	BaseWage       *decimal.Decimal `json:"base_wage,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be YYYY-MM-DD"})
	}
	validTypes := []string{
		string(EmploymentTypePermanent), string(EmploymentTypeProbation),
		string(EmploymentTypeContract), string(EmploymentTypeIntern),
	}
	if !validator.IsInSlice(r.EmploymentType, validTypes) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "is not a valid employment type"})
	}
	if r.BaseWage != nil && !r.BaseWage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_wage", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID             string
	FullName       *string          `json:"full_name,omitempty"`
	PhoneNumber    *string          `json:"phone_number,omitempty"`
	DepartmentID   *string          `json:"department_id,omitempty"`
	OfficeID       *string          `json:"office_id,omitempty"`
	EmploymentType *string          `json:"employment_type,omitempty"`
	BaseWage       *decimal.Decimal `json:"base_wage,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.BaseWage != nil && !r.BaseWage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_wage", Message: "must be positive"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID               string           `json:"id"`
	CompanyID        string           `json:"company_id"`
	EmployeeCode     string           `json:"employee_code"`
	FullName         string           `json:"full_name"`
	Email            string           `json:"email"`
	PhoneNumber      *string          `json:"phone_number,omitempty"`
	HireDate         string           `json:"hire_date"`
	EmploymentType   string           `json:"employment_type"`
	EmploymentStatus string           `json:"employment_status"`
	BaseWage         *decimal.Decimal `json:"base_wage,omitempty"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

type EmployeeFilter struct {
	Page   int
	Limit  int
	Search *string
	Status *string
}
