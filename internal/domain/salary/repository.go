package salary

import (
	"context"
	"time"
)

// ComponentRuleRepository is the component rule store. The engine treats it as
// read-only configuration fetched fresh per call; the admin CRUD endpoints are
// the only writers.
type ComponentRuleRepository interface {
	Create(ctx context.Context, rule ComponentRule) (ComponentRule, error)
	GetByID(ctx context.Context, id string, companyID string) (ComponentRule, error)
	GetByIDs(ctx context.Context, ids []string, companyID string) ([]ComponentRule, error)
	GetByCodes(ctx context.Context, codes []string, companyID string) ([]ComponentRule, error)
	ListByCompany(ctx context.Context, companyID string, activeOnly bool) ([]ComponentRule, error)
	Update(ctx context.Context, companyID string, req UpdateComponentRuleRequest) error
	Delete(ctx context.Context, id string, companyID string) error
}

type StructureRepository interface {
	// GetActiveByEmployeeForUpdate locks the employee's active structure row so
	// concurrent versioning calls serialize on it.
	GetActiveByEmployeeForUpdate(ctx context.Context, employeeID string, companyID string) (Structure, error)
	Supersede(ctx context.Context, structureID string, effectiveTo time.Time) error
	Create(ctx context.Context, structure Structure) (Structure, error)
	GetByID(ctx context.Context, id string, companyID string) (Structure, error)
	GetEffectiveOn(ctx context.Context, employeeID string, date time.Time, companyID string) (Structure, error)
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Structure, error)
}

type SlipRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Slip, error)
	// GetByEmployeePeriodForUpdate locks the existing slip row (if any) so the
	// not-draft check and the upsert happen under the same lock.
	GetByEmployeePeriodForUpdate(ctx context.Context, employeeID string, periodEnd time.Time, companyID string) (Slip, error)
	GetByIDForUpdate(ctx context.Context, id string, companyID string) (Slip, error)
	Insert(ctx context.Context, slip Slip) (Slip, error)
	ReplaceDraft(ctx context.Context, slip Slip) (Slip, error)
	UpdateStatus(ctx context.Context, slip Slip) (Slip, error)
	List(ctx context.Context, companyID string, filter SlipFilter) ([]Slip, int64, error)
}
