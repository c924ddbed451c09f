package salary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/apexhr/hrm-backend-go/internal/domain/employee"
	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/apexhr/hrm-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type SalaryServiceImpl struct {
	db            *database.DB
	ruleRepo      salary.ComponentRuleRepository
	structureRepo salary.StructureRepository
	slipRepo      salary.SlipRepository
	employeeRepo  employee.EmployeeRepository
	logger        *slog.Logger
}

func NewSalaryService(
	db *database.DB,
	ruleRepo salary.ComponentRuleRepository,
	structureRepo salary.StructureRepository,
	slipRepo salary.SlipRepository,
	employeeRepo employee.EmployeeRepository,
	logger *slog.Logger,
) salary.SalaryService {
	return &SalaryServiceImpl{
		db:            db,
		ruleRepo:      ruleRepo,
		structureRepo: structureRepo,
		slipRepo:      slipRepo,
		employeeRepo:  employeeRepo,
		logger:        logger,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// ========== COMPONENT RULES ==========

func (s *SalaryServiceImpl) CreateComponentRule(ctx context.Context, req salary.CreateComponentRuleRequest) (salary.ComponentRuleResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.ComponentRuleResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.ComponentRuleResponse{}, err
	}

	isTaxable := false
	if req.IsTaxable != nil {
		isTaxable = *req.IsTaxable
	}
	isStatutory := false
	if req.IsStatutory != nil {
		isStatutory = *req.IsStatutory
	}

	rule := salary.ComponentRule{
		CompanyID:         companyID,
		Code:              req.Code,
		DisplayName:       req.DisplayName,
		Category:          salary.ComponentCategory(req.Category),
		Mode:              salary.ComputationMode(req.Mode),
		BaseComponentCode: req.BaseComponentCode,
		FixedValue:        req.FixedValue,
		PercentValue:      req.PercentValue,
		IsTaxable:         isTaxable,
		IsStatutory:       isStatutory,
		DisplayOrder:      req.DisplayOrder,
		IsActive:          true,
	}

	created, err := s.ruleRepo.Create(ctx, rule)
	if err != nil {
		return salary.ComponentRuleResponse{}, err
	}

	return mapToRuleResponse(created), nil
}

func (s *SalaryServiceImpl) GetComponentRule(ctx context.Context, id string) (salary.ComponentRuleResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.ComponentRuleResponse{}, err
	}

	rule, err := s.ruleRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.ComponentRuleResponse{}, err
	}

	return mapToRuleResponse(rule), nil
}

func (s *SalaryServiceImpl) ListComponentRules(ctx context.Context, activeOnly bool) ([]salary.ComponentRuleResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListByCompany(ctx, companyID, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]salary.ComponentRuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, mapToRuleResponse(rule))
	}

	return result, nil
}

func (s *SalaryServiceImpl) UpdateComponentRule(ctx context.Context, req salary.UpdateComponentRuleRequest) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.ruleRepo.Update(ctx, companyID, req)
}

func (s *SalaryServiceImpl) DeleteComponentRule(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.ruleRepo.Delete(ctx, id, companyID)
}

// ========== CALCULATION ==========

// CalculatePreview evaluates a rule set against a wage without persisting
// anything. Backs the dry-run endpoint HR uses before committing a structure.
func (s *SalaryServiceImpl) CalculatePreview(ctx context.Context, req salary.CalculatePreviewRequest) (salary.EvaluationResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.EvaluationResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.EvaluationResponse{}, err
	}

	rules, err := s.resolveRules(ctx, req.ComponentRuleIDs, companyID)
	if err != nil {
		return salary.EvaluationResponse{}, err
	}

	plan, err := BuildPlan(rules)
	if err != nil {
		return salary.EvaluationResponse{}, err
	}

	result, err := Evaluate(req.Wage, plan, s.logger)
	if err != nil {
		return salary.EvaluationResponse{}, err
	}

	return mapToEvaluationResponse(result), nil
}

func (s *SalaryServiceImpl) resolveRules(ctx context.Context, ruleIDs []string, companyID string) ([]salary.ComponentRule, error) {
	rules, err := s.ruleRepo.GetByIDs(ctx, ruleIDs, companyID)
	if err != nil {
		return nil, err
	}
	if len(rules) != len(ruleIDs) {
		return nil, fmt.Errorf("%w: %d of %d rule ids resolved", salary.ErrComponentRuleNotFound, len(rules), len(ruleIDs))
	}
	return rules, nil
}

// ========== HELPERS ==========

func mapToRuleResponse(rule salary.ComponentRule) salary.ComponentRuleResponse {
	return salary.ComponentRuleResponse{
		ID:                rule.ID,
		Code:              rule.Code,
		DisplayName:       rule.DisplayName,
		Category:          string(rule.Category),
		Mode:              string(rule.Mode),
		BaseComponentCode: rule.BaseComponentCode,
		FixedValue:        rule.FixedValue,
		PercentValue:      rule.PercentValue,
		IsTaxable:         rule.IsTaxable,
		IsStatutory:       rule.IsStatutory,
		DisplayOrder:      rule.DisplayOrder,
		IsActive:          rule.IsActive,
	}
}

func mapToComponentResponses(components []salary.ComputedComponent) []salary.ComputedComponentResponse {
	result := make([]salary.ComputedComponentResponse, 0, len(components))
	for _, c := range components {
		result = append(result, salary.ComputedComponentResponse{
			RuleCode:     c.RuleCode,
			DisplayName:  c.DisplayName,
			Category:     string(c.Category),
			Mode:         string(c.Mode),
			Amount:       c.Amount,
			IsTaxable:    c.IsTaxable,
			IsStatutory:  c.IsStatutory,
			DisplayOrder: c.DisplayOrder,
		})
	}
	return result
}

func mapToEvaluationResponse(result salary.EvaluationResult) salary.EvaluationResponse {
	return salary.EvaluationResponse{
		Components:      mapToComponentResponses(result.Components),
		TotalEarnings:   result.TotalEarnings,
		GrossSalary:     result.GrossSalary,
		TotalDeductions: result.TotalDeductions,
		Remainder:       result.Remainder,
	}
}

func mapToStructureResponse(structure salary.Structure) salary.StructureResponse {
	var effectiveTo *string
	if structure.EffectiveTo != nil {
		str := structure.EffectiveTo.Format("2006-01-02")
		effectiveTo = &str
	}

	return salary.StructureResponse{
		ID:            structure.ID,
		EmployeeID:    structure.EmployeeID,
		EffectiveFrom: structure.EffectiveFrom.Format("2006-01-02"),
		EffectiveTo:   effectiveTo,
		WageAmount:    structure.WageAmount,
		PayFrequency:  string(structure.PayFrequency),
		Status:        string(structure.Status),
		Components:    mapToComponentResponses(structure.Components),
	}
}

func mapToSlipResponse(slip salary.Slip) salary.SlipResponse {
	employeeName := ""
	if slip.EmployeeName != nil {
		employeeName = *slip.EmployeeName
	}

	return salary.SlipResponse{
		ID:               slip.ID,
		EmployeeID:       slip.EmployeeID,
		EmployeeName:     employeeName,
		StructureID:      slip.StructureID,
		PeriodStart:      slip.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        slip.PeriodEnd.Format("2006-01-02"),
		WorkingDays:      slip.WorkingDays,
		PresentDays:      slip.PresentDays,
		LeaveDays:        slip.LeaveDays,
		AbsentDays:       slip.AbsentDays,
		GrossSalary:      slip.GrossSalary,
		TotalDeductions:  slip.TotalDeductions,
		LossOfPay:        slip.LossOfPay,
		NetSalary:        slip.NetSalary,
		Components:       mapToComponentResponses(slip.Snapshot.Components),
		Status:           string(slip.Status),
		PaymentMode:      slip.PaymentMode,
		PaymentReference: slip.PaymentReference,
		CancelReason:     slip.CancelReason,
	}
}
