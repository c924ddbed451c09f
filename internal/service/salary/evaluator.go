package salary

import (
	"fmt"
	"log/slog"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

var (
	oneHundred   = decimal.NewFromInt(100)
	sumTolerance = decimal.RequireFromString("0.01")
)

// Evaluate computes every component amount for the given wage in plan order.
//
// Amounts are rounded half-up to 2 decimal places. Earning components draw
// down a running remainder of the wage; deduction components are computed and
// recorded but reduce net pay, not the wage. The residual component, if
// present, absorbs the final remainder so earnings sum exactly to the wage.
// Pure function; no I/O.
func Evaluate(wage decimal.Decimal, plan salary.EvaluationPlan, logger *slog.Logger) (salary.EvaluationResult, error) {
	if !wage.IsPositive() {
		return salary.EvaluationResult{}, fmt.Errorf("%w: got %s", salary.ErrInvalidWage, wage)
	}

	remaining := wage
	values := map[string]decimal.Decimal{salary.WageBaseCode: wage}
	components := make([]salary.ComputedComponent, 0, len(plan.Ordered)+1)

	for _, rule := range plan.Ordered {
		var amount decimal.Decimal

		switch rule.Mode {
		case salary.ModeFixed:
			if rule.FixedValue == nil {
				return salary.EvaluationResult{}, fmt.Errorf("%w: %s", salary.ErrMissingFixedValue, rule.Code)
			}
			amount = rule.FixedValue.Round(2)

		case salary.ModePercentOfBase:
			if rule.BaseComponentCode == nil {
				return salary.EvaluationResult{}, fmt.Errorf("%w: %s", salary.ErrMissingBaseComponent, rule.Code)
			}
			if rule.PercentValue == nil {
				return salary.EvaluationResult{}, fmt.Errorf("%w: %s", salary.ErrMissingPercentValue, rule.Code)
			}
			base, ok := values[*rule.BaseComponentCode]
			if !ok {
				return salary.EvaluationResult{}, fmt.Errorf("%w: %s needs %s", salary.ErrUnresolvedDependency, rule.Code, *rule.BaseComponentCode)
			}
			amount = base.Mul(*rule.PercentValue).Div(oneHundred).Round(2)

		case salary.ModeFormula:
			// Formula components are not supported yet and evaluate to zero.
			if logger != nil {
				logger.Warn("formula component is not supported, evaluated to zero",
					slog.String("component_code", rule.Code))
			}
			amount = decimal.Zero

		default:
			return salary.EvaluationResult{}, fmt.Errorf("unexpected computation mode %q for %s", rule.Mode, rule.Code)
		}

		if rule.Category == salary.CategoryEarning {
			if amount.GreaterThan(remaining) {
				return salary.EvaluationResult{}, fmt.Errorf("%w: %s = %s, remaining wage %s",
					salary.ErrComponentExceedsWage, rule.Code, amount, remaining)
			}
			remaining = remaining.Sub(amount)
		}

		values[rule.Code] = amount
		components = append(components, computedFromRule(rule, amount))
	}

	if plan.Residual != nil {
		residualAmount := remaining.Round(2)
		if residualAmount.IsNegative() {
			return salary.EvaluationResult{}, fmt.Errorf("%w: %s = %s",
				salary.ErrNegativeResidual, plan.Residual.Code, residualAmount)
		}
		remaining = remaining.Sub(residualAmount)
		values[plan.Residual.Code] = residualAmount
		components = append(components, computedFromRule(*plan.Residual, residualAmount))
	}

	totalEarnings := decimal.Zero
	totalDeductions := decimal.Zero
	for _, c := range components {
		if c.Category == salary.CategoryEarning {
			totalEarnings = totalEarnings.Add(c.Amount)
		} else {
			totalDeductions = totalDeductions.Add(c.Amount)
		}
	}

	// A rule set without a residual can under- or overshoot the wage; with a
	// residual the sum is exact and this never trips.
	if totalEarnings.Sub(wage).Abs().GreaterThan(sumTolerance) {
		return salary.EvaluationResult{}, fmt.Errorf("%w: earnings sum %s, wage %s",
			salary.ErrEarningsSumMismatch, totalEarnings, wage)
	}

	return salary.EvaluationResult{
		Components:      components,
		TotalEarnings:   totalEarnings,
		GrossSalary:     totalEarnings,
		TotalDeductions: totalDeductions,
		Remainder:       remaining,
	}, nil
}

func computedFromRule(rule salary.ComponentRule, amount decimal.Decimal) salary.ComputedComponent {
	return salary.ComputedComponent{
		RuleCode:     rule.Code,
		DisplayName:  rule.DisplayName,
		Category:     rule.Category,
		Mode:         rule.Mode,
		Amount:       amount,
		IsTaxable:    rule.IsTaxable,
		IsStatutory:  rule.IsStatutory,
		DisplayOrder: rule.DisplayOrder,
	}
}
