package salary

import (
	"context"
	"fmt"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

// ValidateStructure re-checks a persisted structure's invariants independently
// of the evaluation that produced it. Read-only; returns a report rather than
// an error so callers can surface every finding at once.
func (s *SalaryServiceImpl) ValidateStructure(ctx context.Context, id string) (salary.ValidationReport, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return salary.ValidationReport{}, err
	}

	structure, err := s.structureRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return salary.ValidationReport{}, err
	}

	return auditStructure(structure), nil
}

// auditStructure runs the invariant checks over a structure's persisted
// components. Pure function; repeated calls on the same structure return the
// same report.
func auditStructure(structure salary.Structure) salary.ValidationReport {
	var findings []string

	if len(structure.Components) == 0 {
		findings = append(findings, "structure has no components")
	}

	earningsSum := decimal.Zero
	residualCount := 0
	seen := make(map[string]bool, len(structure.Components))
	for _, c := range structure.Components {
		if seen[c.RuleCode] {
			findings = append(findings, fmt.Sprintf("duplicate component code %s", c.RuleCode))
		}
		seen[c.RuleCode] = true

		if c.Amount.IsNegative() {
			findings = append(findings, fmt.Sprintf("component %s has negative amount %s", c.RuleCode, c.Amount))
		}
		if c.Mode == salary.ModeResidual {
			residualCount++
		}
		if c.Category == salary.CategoryEarning {
			earningsSum = earningsSum.Add(c.Amount)
		}
	}

	if residualCount > 1 {
		findings = append(findings, fmt.Sprintf("structure has %d residual components, at most one is allowed", residualCount))
	}

	if diff := earningsSum.Sub(structure.WageAmount).Abs(); diff.GreaterThan(sumTolerance) {
		findings = append(findings, fmt.Sprintf("earning components sum to %s, wage is %s (difference %s)",
			earningsSum, structure.WageAmount, diff))
	}

	return salary.ValidationReport{
		Valid:  len(findings) == 0,
		Errors: findings,
	}
}
