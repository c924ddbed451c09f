package salary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/apexhr/hrm-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CreateStructure evaluates the rule set against the wage and persists the
// result as the employee's new active structure. Any previously active
// structure is superseded with effective_to set to the day before the new
// effective_from; both writes happen in one transaction.
func (s *SalaryServiceImpl) CreateStructure(ctx context.Context, req salary.CreateStructureRequest) (salary.StructureResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.StructureResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	effectiveFrom, err := time.Parse("2006-01-02", req.EffectiveFrom)
	if err != nil {
		return salary.StructureResponse{}, fmt.Errorf("failed to parse effective_from: %w", err)
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return salary.StructureResponse{}, err
	}

	rules, err := s.resolveRules(ctx, req.ComponentRuleIDs, companyID)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	return s.createStructureVersion(ctx, versionInput{
		CompanyID:     companyID,
		UserID:        userID,
		EmployeeID:    req.EmployeeID,
		EffectiveFrom: effectiveFrom,
		Wage:          req.Wage,
		PayFrequency:  salary.PayFrequency(req.PayFrequency),
		Rules:         rules,
	})
}

// Recalculate creates a new structure version from an existing structure's
// rule set at a new wage, effective today. The old version is superseded, not
// mutated; slips already generated from it keep their snapshots.
func (s *SalaryServiceImpl) Recalculate(ctx context.Context, structureID string, req salary.RecalculateStructureRequest) (salary.StructureResponse, error) {
	if err := req.Validate(); err != nil {
		return salary.StructureResponse{}, err
	}

	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	structure, err := s.structureRepo.GetByID(ctx, structureID, companyID)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	codes := make([]string, 0, len(structure.Components))
	for _, c := range structure.Components {
		codes = append(codes, c.RuleCode)
	}

	rules, err := s.ruleRepo.GetByCodes(ctx, codes, companyID)
	if err != nil {
		return salary.StructureResponse{}, err
	}
	if len(rules) != len(codes) {
		return salary.StructureResponse{}, fmt.Errorf("%w: %d of %d rule codes resolved", salary.ErrComponentRuleNotFound, len(rules), len(codes))
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	return s.createStructureVersion(ctx, versionInput{
		CompanyID:     companyID,
		UserID:        userID,
		EmployeeID:    structure.EmployeeID,
		EffectiveFrom: today,
		Wage:          req.Wage,
		PayFrequency:  structure.PayFrequency,
		Rules:         rules,
	})
}

func (s *SalaryServiceImpl) GetStructure(ctx context.Context, id string) (salary.StructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	structure, err := s.structureRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	return mapToStructureResponse(structure), nil
}

// ListStructuresByEmployee returns the full version history, newest first.
func (s *SalaryServiceImpl) ListStructuresByEmployee(ctx context.Context, employeeID string) ([]salary.StructureResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	structures, err := s.structureRepo.ListByEmployee(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]salary.StructureResponse, 0, len(structures))
	for _, structure := range structures {
		result = append(result, mapToStructureResponse(structure))
	}

	return result, nil
}

type versionInput struct {
	CompanyID     string
	UserID        string
	EmployeeID    string
	EffectiveFrom time.Time
	Wage          decimal.Decimal
	PayFrequency  salary.PayFrequency
	Rules         []salary.ComponentRule
}

func (s *SalaryServiceImpl) createStructureVersion(ctx context.Context, in versionInput) (salary.StructureResponse, error) {
	plan, err := BuildPlan(in.Rules)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	result, err := Evaluate(in.Wage, plan, s.logger)
	if err != nil {
		return salary.StructureResponse{}, err
	}

	var created salary.Structure
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		active, err := s.structureRepo.GetActiveByEmployeeForUpdate(txCtx, in.EmployeeID, in.CompanyID)
		switch {
		case err == nil:
			// A new version must start strictly after the active one. Backdated
			// or same-day revisions would overlap the active period.
			if !active.EffectiveFrom.Before(in.EffectiveFrom) {
				return fmt.Errorf("%w: active structure effective from %s, new version from %s",
					salary.ErrStructureEffectiveDateConflict,
					active.EffectiveFrom.Format("2006-01-02"),
					in.EffectiveFrom.Format("2006-01-02"))
			}
			if err := s.structureRepo.Supersede(txCtx, active.ID, in.EffectiveFrom.AddDate(0, 0, -1)); err != nil {
				return err
			}
		case errors.Is(err, salary.ErrStructureNotFound):
			// First structure for this employee.
		default:
			return err
		}

		created, err = s.structureRepo.Create(txCtx, salary.Structure{
			EmployeeID:    in.EmployeeID,
			CompanyID:     in.CompanyID,
			EffectiveFrom: in.EffectiveFrom,
			WageAmount:    in.Wage,
			PayFrequency:  in.PayFrequency,
			Status:        salary.StructureStatusActive,
			Components:    result.Components,
			CreatedBy:     in.UserID,
		})
		return err
	})
	if err != nil {
		return salary.StructureResponse{}, err
	}

	s.logger.Info("salary structure version created",
		"structure_id", created.ID,
		"employee_id", in.EmployeeID,
		"effective_from", in.EffectiveFrom.Format("2006-01-02"))

	return mapToStructureResponse(created), nil
}
