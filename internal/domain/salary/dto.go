package salary

import (
	"github.com/apexhr/hrm-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== COMPONENT RULE DTOs ==========

type CreateComponentRuleRequest struct {
	Code              string           `json:"code"`
	DisplayName       string           `json:"display_name"`
	Category          string           `json:"category"` // "earning" or "deduction"
	Mode              string           `json:"mode"`     // fixed | percent_of_base | formula | residual
	BaseComponentCode *string          `json:"base_component_code,omitempty"`
	FixedValue        *decimal.Decimal `json:"fixed_value,omitempty"`
	PercentValue      *decimal.Decimal `json:"percent_value,omitempty"`
	IsTaxable         *bool            `json:"is_taxable,omitempty"`
	IsStatutory       *bool            `json:"is_statutory,omitempty"`
	DisplayOrder      int              `json:"display_order"`
}

func (r *CreateComponentRuleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidComponentCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "must be an uppercase symbolic name, e.g. BASIC"})
	}
	if validator.IsEmpty(r.DisplayName) {
		errs = append(errs, validator.ValidationError{Field: "display_name", Message: "is required"})
	}
	if r.Category != string(CategoryEarning) && r.Category != string(CategoryDeduction) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be 'earning' or 'deduction'"})
	}

	switch ComputationMode(r.Mode) {
	case ModeFixed:
		if r.FixedValue == nil {
			errs = append(errs, validator.ValidationError{Field: "fixed_value", Message: "is required for fixed components"})
		} else if r.FixedValue.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "fixed_value", Message: "must be non-negative"})
		}
		if r.PercentValue != nil {
			errs = append(errs, validator.ValidationError{Field: "percent_value", Message: "must not be set for fixed components"})
		}
	case ModePercentOfBase:
		if r.PercentValue == nil {
			errs = append(errs, validator.ValidationError{Field: "percent_value", Message: "is required for percent components"})
		} else if r.PercentValue.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "percent_value", Message: "must be non-negative"})
		}
		if r.BaseComponentCode == nil || validator.IsEmpty(*r.BaseComponentCode) {
			errs = append(errs, validator.ValidationError{Field: "base_component_code", Message: "is required for percent components"})
		}
		if r.FixedValue != nil {
			errs = append(errs, validator.ValidationError{Field: "fixed_value", Message: "must not be set for percent components"})
		}
	case ModeFormula, ModeResidual:
		if r.FixedValue != nil || r.PercentValue != nil {
			errs = append(errs, validator.ValidationError{Field: "mode", Message: "fixed_value and percent_value must not be set for this mode"})
		}
		if ComputationMode(r.Mode) == ModeResidual && r.BaseComponentCode != nil {
			errs = append(errs, validator.ValidationError{Field: "base_component_code", Message: "must not be set for residual components"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "is not a valid computation mode"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateComponentRuleRequest struct {
	ID           string
	DisplayName  *string          `json:"display_name,omitempty"`
	FixedValue   *decimal.Decimal `json:"fixed_value,omitempty"`
	PercentValue *decimal.Decimal `json:"percent_value,omitempty"`
	IsTaxable    *bool            `json:"is_taxable,omitempty"`
	IsStatutory  *bool            `json:"is_statutory,omitempty"`
	DisplayOrder *int             `json:"display_order,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

type ComponentRuleResponse struct {
	ID                string           `json:"id"`
	Code              string           `json:"code"`
	DisplayName       string           `json:"display_name"`
	Category          string           `json:"category"`
	Mode              string           `json:"mode"`
	BaseComponentCode *string          `json:"base_component_code,omitempty"`
	FixedValue        *decimal.Decimal `json:"fixed_value,omitempty"`
	PercentValue      *decimal.Decimal `json:"percent_value,omitempty"`
	IsTaxable         bool             `json:"is_taxable"`
	IsStatutory       bool             `json:"is_statutory"`
	DisplayOrder      int              `json:"display_order"`
	IsActive          bool             `json:"is_active"`
}

// ========== CALCULATION DTOs ==========

type CalculatePreviewRequest struct {
	Wage             decimal.Decimal `json:"wage"`
	ComponentRuleIDs []string        `json:"component_rule_ids"`
}

func (r *CalculatePreviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Wage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "wage", Message: "must be greater than zero"})
	}
	if len(r.ComponentRuleIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "component_rule_ids", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComputedComponentResponse struct {
	RuleCode     string          `json:"rule_code"`
	DisplayName  string          `json:"display_name"`
	Category     string          `json:"category"`
	Mode         string          `json:"mode"`
	Amount       decimal.Decimal `json:"amount"`
	IsTaxable    bool            `json:"is_taxable"`
	IsStatutory  bool            `json:"is_statutory"`
	DisplayOrder int             `json:"display_order"`
}

type EvaluationResponse struct {
	Components      []ComputedComponentResponse `json:"components"`
	TotalEarnings   decimal.Decimal             `json:"total_earnings"`
	GrossSalary     decimal.Decimal             `json:"gross_salary"`
	TotalDeductions decimal.Decimal             `json:"total_deductions"`
	Remainder       decimal.Decimal             `json:"remainder"`
}

// ========== STRUCTURE DTOs ==========

type CreateStructureRequest struct {
	EmployeeID       string          `json:"employee_id"`
	EffectiveFrom    string          `json:"effective_from"`
	Wage             decimal.Decimal `json:"wage"`
	PayFrequency     string          `json:"pay_frequency"`
	ComponentRuleIDs []string        `json:"component_rule_ids"`
}

func (r *CreateStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be YYYY-MM-DD"})
	}
	if !r.Wage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "wage", Message: "must be greater than zero"})
	}
	if r.PayFrequency != string(PayFrequencyMonthly) && r.PayFrequency != string(PayFrequencyWeekly) {
		errs = append(errs, validator.ValidationError{Field: "pay_frequency", Message: "must be 'monthly' or 'weekly'"})
	}
	if len(r.ComponentRuleIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "component_rule_ids", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecalculateStructureRequest struct {
	Wage decimal.Decimal `json:"wage"`
}

func (r *RecalculateStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Wage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "wage", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StructureResponse struct {
	ID            string                      `json:"id"`
	EmployeeID    string                      `json:"employee_id"`
	EffectiveFrom string                      `json:"effective_from"`
	EffectiveTo   *string                     `json:"effective_to,omitempty"`
	WageAmount    decimal.Decimal             `json:"wage_amount"`
	PayFrequency  string                      `json:"pay_frequency"`
	Status        string                      `json:"status"`
	Components    []ComputedComponentResponse `json:"components"`
}

type ValidationReport struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ========== SLIP DTOs ==========

type GenerateSlipRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	WorkingDays int    `json:"working_days"`
	PresentDays int    `json:"present_days"`
	LeaveDays   int    `json:"leave_days"`
}

func (r *GenerateSlipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	start, okStart := validator.IsValidDate(r.PeriodStart)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be YYYY-MM-DD"})
	}
	end, okEnd := validator.IsValidDate(r.PeriodEnd)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be YYYY-MM-DD"})
	}
	if okStart && okEnd && start.After(end) {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must not be after period_end"})
	}
	if r.WorkingDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "working_days", Message: "must be greater than zero"})
	}
	if r.PresentDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "present_days", Message: "must be non-negative"})
	}
	if r.LeaveDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "leave_days", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MarkSlipPaidRequest struct {
	ID               string
	PaymentMode      string  `json:"payment_mode"`
	PaymentReference *string `json:"payment_reference,omitempty"`
}

func (r *MarkSlipPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PaymentMode) {
		errs = append(errs, validator.ValidationError{Field: "payment_mode", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CancelSlipRequest struct {
	ID     string
	Reason string `json:"reason"`
}

func (r *CancelSlipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SlipResponse struct {
	ID               string                      `json:"id"`
	EmployeeID       string                      `json:"employee_id"`
	EmployeeName     string                      `json:"employee_name,omitempty"`
	StructureID      string                      `json:"structure_id"`
	PeriodStart      string                      `json:"period_start"`
	PeriodEnd        string                      `json:"period_end"`
	WorkingDays      int                         `json:"working_days"`
	PresentDays      int                         `json:"present_days"`
	LeaveDays        int                         `json:"leave_days"`
	AbsentDays       int                         `json:"absent_days"`
	GrossSalary      decimal.Decimal             `json:"gross_salary"`
	TotalDeductions  decimal.Decimal             `json:"total_deductions"`
	LossOfPay        decimal.Decimal             `json:"loss_of_pay"`
	NetSalary        decimal.Decimal             `json:"net_salary"`
	Components       []ComputedComponentResponse `json:"components"`
	Status           string                      `json:"status"`
	PaymentMode      *string                     `json:"payment_mode,omitempty"`
	PaymentReference *string                     `json:"payment_reference,omitempty"`
	CancelReason     *string                     `json:"cancel_reason,omitempty"`
}

type SlipFilter struct {
	Page       int
	Limit      int
	EmployeeID *string
	Status     *string
}

type ListSlipResponse struct {
	Data       []SlipResponse `json:"data"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}
