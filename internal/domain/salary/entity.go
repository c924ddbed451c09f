package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// WageBaseCode is the literal base code a percent rule may reference to mean
// "percentage of the employee's wage" rather than of another component.
const WageBaseCode = "WAGE"

type ComponentCategory string

const (
	CategoryEarning   ComponentCategory = "earning"
	CategoryDeduction ComponentCategory = "deduction"
)

type ComputationMode string

const (
	ModeFixed         ComputationMode = "fixed"
	ModePercentOfBase ComputationMode = "percent_of_base"
	ModeFormula       ComputationMode = "formula"
	ModeResidual      ComputationMode = "residual"
)

// ComponentRule - configuration describing how one salary component is computed.
// Rules are read-only to the engine; it consumes them fresh on every call.
type ComponentRule struct {
	ID                string
	CompanyID         string
	Code              string
	DisplayName       string
	Category          ComponentCategory
	Mode              ComputationMode
	BaseComponentCode *string // required when Mode = percent_of_base; code of another rule or WageBaseCode
	FixedValue        *decimal.Decimal
	PercentValue      *decimal.Decimal
	IsTaxable         bool
	IsStatutory       bool
	DisplayOrder      int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EvaluationPlan is a dependency-ordered evaluation sequence: every rule's base
// component appears before the rule itself, and the residual rule (if any) is last.
type EvaluationPlan struct {
	Ordered  []ComponentRule
	Residual *ComponentRule
}

// ComputedComponent is one evaluated slice of the wage. Immutable once produced.
type ComputedComponent struct {
	RuleCode     string            `json:"rule_code"`
	DisplayName  string            `json:"display_name"`
	Category     ComponentCategory `json:"category"`
	Mode         ComputationMode   `json:"mode"`
	Amount       decimal.Decimal   `json:"amount"`
	IsTaxable    bool              `json:"is_taxable"`
	IsStatutory  bool              `json:"is_statutory"`
	DisplayOrder int               `json:"display_order"`
}

type EvaluationResult struct {
	Components      []ComputedComponent
	TotalEarnings   decimal.Decimal
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	Remainder       decimal.Decimal
}

type StructureStatus string

const (
	StructureStatusActive     StructureStatus = "active"
	StructureStatusSuperseded StructureStatus = "superseded"
)

type PayFrequency string

const (
	PayFrequencyMonthly PayFrequency = "monthly"
	PayFrequencyWeekly  PayFrequency = "weekly"
)

// Structure is one wage-effective-period for one employee. Structures are never
// deleted; a wage change supersedes the active version and creates a new one.
type Structure struct {
	ID            string
	EmployeeID    string
	CompanyID     string
	EffectiveFrom time.Time
	EffectiveTo   *time.Time // nil = currently active
	WageAmount    decimal.Decimal
	PayFrequency  PayFrequency
	Status        StructureStatus
	Components    []ComputedComponent
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type SlipStatus string

const (
	SlipStatusDraft     SlipStatus = "draft"
	SlipStatusGenerated SlipStatus = "generated"
	SlipStatusApproved  SlipStatus = "approved"
	SlipStatusPaid      SlipStatus = "paid"
	SlipStatusCancelled SlipStatus = "cancelled"
)

// SlipSnapshot is the frozen calculation detail attached to a slip. Unlike
// structure components (normalized rows), the snapshot is stored as a JSON blob
// so a later structure or rule change can never rewrite slip history.
type SlipSnapshot struct {
	Components  []ComputedComponent `json:"components"`
	PerDayWage  decimal.Decimal     `json:"per_day_wage"`
	LossOfPay   decimal.Decimal     `json:"loss_of_pay"`
	WorkingDays int                 `json:"working_days"`
	PresentDays int                 `json:"present_days"`
	LeaveDays   int                 `json:"leave_days"`
	AbsentDays  int                 `json:"absent_days"`
}

// Slip is one pay period's computed pay for one employee.
type Slip struct {
	ID               string
	EmployeeID       string
	CompanyID        string
	StructureID      string
	PeriodStart      time.Time
	PeriodEnd        time.Time
	WorkingDays      int
	PresentDays      int
	LeaveDays        int
	AbsentDays       int
	GrossSalary      decimal.Decimal
	TotalDeductions  decimal.Decimal
	LossOfPay        decimal.Decimal
	NetSalary        decimal.Decimal
	Snapshot         SlipSnapshot
	Status           SlipStatus
	ApprovedBy       *string
	ApprovedAt       *time.Time
	PaidBy           *string
	PaidAt           *time.Time
	PaymentMode      *string
	PaymentReference *string
	CancelReason     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}
