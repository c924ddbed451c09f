package salary

import (
	"testing"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func percentRule(code, base string, percent int64, order int) salary.ComponentRule {
	pct := decimal.NewFromInt(percent)
	b := base
	return salary.ComponentRule{
		Code:              code,
		DisplayName:       code,
		Category:          salary.CategoryEarning,
		Mode:              salary.ModePercentOfBase,
		BaseComponentCode: &b,
		PercentValue:      &pct,
		DisplayOrder:      order,
	}
}

func fixedRule(code string, value int64, order int) salary.ComponentRule {
	v := decimal.NewFromInt(value)
	return salary.ComponentRule{
		Code:         code,
		DisplayName:  code,
		Category:     salary.CategoryEarning,
		Mode:         salary.ModeFixed,
		FixedValue:   &v,
		DisplayOrder: order,
	}
}

func residualRule(code string, order int) salary.ComponentRule {
	return salary.ComponentRule{
		Code:         code,
		DisplayName:  code,
		Category:     salary.CategoryEarning,
		Mode:         salary.ModeResidual,
		DisplayOrder: order,
	}
}

func planCodes(plan salary.EvaluationPlan) []string {
	codes := make([]string, 0, len(plan.Ordered))
	for _, r := range plan.Ordered {
		codes = append(codes, r.Code)
	}
	return codes
}

func TestBuildPlan_OrdersByDependency(t *testing.T) {
	// HRA depends on BASIC, so it must come after even though its
	// display_order is lower.
	rules := []salary.ComponentRule{
		percentRule("HRA", "BASIC", 50, 1),
		percentRule("BASIC", salary.WageBaseCode, 40, 2),
		residualRule("SPECIAL", 3),
	}

	plan, err := BuildPlan(rules)
	require.NoError(t, err)

	assert.Equal(t, []string{"BASIC", "HRA"}, planCodes(plan))
	require.NotNil(t, plan.Residual)
	assert.Equal(t, "SPECIAL", plan.Residual.Code)
}

func TestBuildPlan_TieBreaksByDisplayOrderThenCode(t *testing.T) {
	rules := []salary.ComponentRule{
		fixedRule("CONVEYANCE", 1600, 2),
		fixedRule("MEDICAL", 1250, 2),
		fixedRule("BASIC", 20000, 1),
	}

	plan, err := BuildPlan(rules)
	require.NoError(t, err)

	assert.Equal(t, []string{"BASIC", "CONVEYANCE", "MEDICAL"}, planCodes(plan))
	assert.Nil(t, plan.Residual)
}

func TestBuildPlan_DeterministicAcrossInputOrder(t *testing.T) {
	a := []salary.ComponentRule{
		percentRule("BASIC", salary.WageBaseCode, 40, 1),
		percentRule("HRA", "BASIC", 50, 2),
		fixedRule("MEDICAL", 1250, 3),
	}
	b := []salary.ComponentRule{a[2], a[0], a[1]}

	planA, err := BuildPlan(a)
	require.NoError(t, err)
	planB, err := BuildPlan(b)
	require.NoError(t, err)

	assert.Equal(t, planCodes(planA), planCodes(planB))
}

func TestBuildPlan_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		rules   []salary.ComponentRule
		wantErr error
	}{
		{
			name:    "empty rule set",
			rules:   nil,
			wantErr: salary.ErrEmptyRuleSet,
		},
		{
			name: "duplicate code",
			rules: []salary.ComponentRule{
				fixedRule("BASIC", 20000, 1),
				fixedRule("BASIC", 15000, 2),
			},
			wantErr: salary.ErrDuplicateComponentCode,
		},
		{
			name: "two residuals",
			rules: []salary.ComponentRule{
				percentRule("BASIC", salary.WageBaseCode, 40, 1),
				residualRule("SPECIAL", 2),
				residualRule("OTHER", 3),
			},
			wantErr: salary.ErrMultipleResidualComponents,
		},
		{
			name: "unknown base component",
			rules: []salary.ComponentRule{
				percentRule("HRA", "BASIC", 50, 1),
			},
			wantErr: salary.ErrUnknownBaseComponent,
		},
		{
			name: "cycle between components",
			rules: []salary.ComponentRule{
				percentRule("A", "B", 50, 1),
				percentRule("B", "A", 50, 2),
			},
			wantErr: salary.ErrCyclicDependency,
		},
		{
			name: "percent of residual",
			rules: []salary.ComponentRule{
				residualRule("SPECIAL", 1),
				percentRule("HRA", "SPECIAL", 50, 2),
			},
			wantErr: salary.ErrCyclicDependency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPlan(tt.rules)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildPlan_ResidualWithBaseRejected(t *testing.T) {
	base := "BASIC"
	rules := []salary.ComponentRule{
		fixedRule("BASIC", 20000, 1),
		{
			Code:              "SPECIAL",
			DisplayName:       "Special Allowance",
			Category:          salary.CategoryEarning,
			Mode:              salary.ModeResidual,
			BaseComponentCode: &base,
			DisplayOrder:      2,
		},
	}

	_, err := BuildPlan(rules)
	assert.ErrorIs(t, err, salary.ErrResidualHasBase)
}
