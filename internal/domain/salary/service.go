package salary

import "context"

type SalaryService interface {
	// Component rule store admin
	CreateComponentRule(ctx context.Context, req CreateComponentRuleRequest) (ComponentRuleResponse, error)
	GetComponentRule(ctx context.Context, id string) (ComponentRuleResponse, error)
	ListComponentRules(ctx context.Context, activeOnly bool) ([]ComponentRuleResponse, error)
	UpdateComponentRule(ctx context.Context, req UpdateComponentRuleRequest) error
	DeleteComponentRule(ctx context.Context, id string) error

	// Calculation
	CalculatePreview(ctx context.Context, req CalculatePreviewRequest) (EvaluationResponse, error)

	// Structures
	CreateStructure(ctx context.Context, req CreateStructureRequest) (StructureResponse, error)
	GetStructure(ctx context.Context, id string) (StructureResponse, error)
	ListStructuresByEmployee(ctx context.Context, employeeID string) ([]StructureResponse, error)
	ValidateStructure(ctx context.Context, id string) (ValidationReport, error)
	Recalculate(ctx context.Context, structureID string, req RecalculateStructureRequest) (StructureResponse, error)

	// Slips
	GenerateSlip(ctx context.Context, req GenerateSlipRequest) (SlipResponse, error)
	GetSlip(ctx context.Context, id string) (SlipResponse, error)
	ListSlips(ctx context.Context, filter SlipFilter) (ListSlipResponse, error)
	ApproveSlip(ctx context.Context, id string) (SlipResponse, error)
	MarkSlipPaid(ctx context.Context, req MarkSlipPaidRequest) (SlipResponse, error)
	CancelSlip(ctx context.Context, req CancelSlipRequest) (SlipResponse, error)
}
