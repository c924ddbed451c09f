package salary

import (
	"io"
	"log/slog"
	"testing"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func deductionRule(code string, value int64, order int) salary.ComponentRule {
	v := decimal.NewFromInt(value)
	return salary.ComponentRule{
		Code:         code,
		DisplayName:  code,
		Category:     salary.CategoryDeduction,
		Mode:         salary.ModeFixed,
		FixedValue:   &v,
		DisplayOrder: order,
	}
}

func mustPlan(t *testing.T, rules []salary.ComponentRule) salary.EvaluationPlan {
	t.Helper()
	plan, err := BuildPlan(rules)
	require.NoError(t, err)
	return plan
}

func amountOf(t *testing.T, result salary.EvaluationResult, code string) decimal.Decimal {
	t.Helper()
	for _, c := range result.Components {
		if c.RuleCode == code {
			return c.Amount
		}
	}
	t.Fatalf("component %s not in result", code)
	return decimal.Zero
}

// Standard three-component split: BASIC 40% of wage, HRA 50% of BASIC,
// SPECIAL absorbs the rest.
func standardRules() []salary.ComponentRule {
	return []salary.ComponentRule{
		percentRule("BASIC", salary.WageBaseCode, 40, 1),
		percentRule("HRA", "BASIC", 50, 2),
		residualRule("SPECIAL", 3),
	}
}

func TestEvaluate_StandardSplit(t *testing.T) {
	plan := mustPlan(t, standardRules())

	result, err := Evaluate(decimal.NewFromInt(50000), plan, discardLogger())
	require.NoError(t, err)

	assert.True(t, amountOf(t, result, "BASIC").Equal(decimal.NewFromInt(20000)))
	assert.True(t, amountOf(t, result, "HRA").Equal(decimal.NewFromInt(10000)))
	assert.True(t, amountOf(t, result, "SPECIAL").Equal(decimal.NewFromInt(20000)))
	assert.True(t, result.TotalEarnings.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.GrossSalary.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.Remainder.IsZero())
}

func TestEvaluate_SmallWage(t *testing.T) {
	plan := mustPlan(t, standardRules())

	result, err := Evaluate(decimal.NewFromInt(100), plan, discardLogger())
	require.NoError(t, err)

	assert.True(t, amountOf(t, result, "BASIC").Equal(decimal.NewFromInt(40)))
	assert.True(t, amountOf(t, result, "HRA").Equal(decimal.NewFromInt(20)))
	assert.True(t, amountOf(t, result, "SPECIAL").Equal(decimal.NewFromInt(40)))
	assert.True(t, result.TotalEarnings.Equal(decimal.NewFromInt(100)))
}

func TestEvaluate_RoundsHalfUpToTwoPlaces(t *testing.T) {
	// 33.33% of 10000 is 3333.0, 50% of that is 1666.5; the residual picks up
	// what rounding leaves over and earnings still sum to the wage exactly.
	pct := decimal.RequireFromString("33.33")
	basic := percentRule("BASIC", salary.WageBaseCode, 0, 1)
	basic.PercentValue = &pct
	plan := mustPlan(t, []salary.ComponentRule{
		basic,
		percentRule("HRA", "BASIC", 50, 2),
		residualRule("SPECIAL", 3),
	})

	result, err := Evaluate(decimal.NewFromInt(10000), plan, discardLogger())
	require.NoError(t, err)

	assert.True(t, amountOf(t, result, "BASIC").Equal(decimal.RequireFromString("3333")))
	assert.True(t, amountOf(t, result, "HRA").Equal(decimal.RequireFromString("1666.5")))
	assert.True(t, amountOf(t, result, "SPECIAL").Equal(decimal.RequireFromString("5000.5")))
	assert.True(t, result.TotalEarnings.Equal(decimal.NewFromInt(10000)))
}

func TestEvaluate_DeductionsDoNotConsumeWage(t *testing.T) {
	plan := mustPlan(t, []salary.ComponentRule{
		percentRule("BASIC", salary.WageBaseCode, 40, 1),
		residualRule("SPECIAL", 2),
		deductionRule("PF", 1800, 3),
		deductionRule("PT", 200, 4),
	})

	result, err := Evaluate(decimal.NewFromInt(50000), plan, discardLogger())
	require.NoError(t, err)

	// Earnings still cover the full wage; deductions reduce net, not gross.
	assert.True(t, result.TotalEarnings.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.TotalDeductions.Equal(decimal.NewFromInt(2000)))
	assert.True(t, amountOf(t, result, "SPECIAL").Equal(decimal.NewFromInt(30000)))
}

func TestEvaluate_FormulaComponentIsZero(t *testing.T) {
	plan := mustPlan(t, []salary.ComponentRule{
		percentRule("BASIC", salary.WageBaseCode, 40, 1),
		{
			Code:         "BONUS",
			DisplayName:  "Bonus",
			Category:     salary.CategoryEarning,
			Mode:         salary.ModeFormula,
			DisplayOrder: 2,
		},
		residualRule("SPECIAL", 3),
	})

	result, err := Evaluate(decimal.NewFromInt(50000), plan, discardLogger())
	require.NoError(t, err)

	assert.True(t, amountOf(t, result, "BONUS").IsZero())
	assert.True(t, amountOf(t, result, "SPECIAL").Equal(decimal.NewFromInt(30000)))
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		wage    decimal.Decimal
		rules   []salary.ComponentRule
		wantErr error
	}{
		{
			name:    "zero wage",
			wage:    decimal.Zero,
			rules:   standardRules(),
			wantErr: salary.ErrInvalidWage,
		},
		{
			name:    "negative wage",
			wage:    decimal.NewFromInt(-1),
			rules:   standardRules(),
			wantErr: salary.ErrInvalidWage,
		},
		{
			name: "fixed component exceeds wage",
			wage: decimal.NewFromInt(100),
			rules: []salary.ComponentRule{
				fixedRule("BASIC", 5000, 1),
				residualRule("SPECIAL", 2),
			},
			wantErr: salary.ErrComponentExceedsWage,
		},
		{
			name: "earnings undershoot without residual",
			wage: decimal.NewFromInt(50000),
			rules: []salary.ComponentRule{
				percentRule("BASIC", salary.WageBaseCode, 40, 1),
			},
			wantErr: salary.ErrEarningsSumMismatch,
		},
		{
			name: "fixed component without value",
			wage: decimal.NewFromInt(50000),
			rules: []salary.ComponentRule{
				{
					Code:         "BASIC",
					DisplayName:  "Basic",
					Category:     salary.CategoryEarning,
					Mode:         salary.ModeFixed,
					DisplayOrder: 1,
				},
				residualRule("SPECIAL", 2),
			},
			wantErr: salary.ErrMissingFixedValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := mustPlan(t, tt.rules)
			_, err := Evaluate(tt.wage, plan, discardLogger())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEvaluate_ExactFixedSplitWithoutResidual(t *testing.T) {
	plan := mustPlan(t, []salary.ComponentRule{
		fixedRule("BASIC", 30000, 1),
		fixedRule("HRA", 20000, 2),
	})

	result, err := Evaluate(decimal.NewFromInt(50000), plan, discardLogger())
	require.NoError(t, err)

	assert.True(t, result.TotalEarnings.Equal(decimal.NewFromInt(50000)))
	assert.True(t, result.Remainder.IsZero())
}
