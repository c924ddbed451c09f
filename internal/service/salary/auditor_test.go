package salary

import (
	"testing"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func earningComponent(code string, amount int64) salary.ComputedComponent {
	return salary.ComputedComponent{
		RuleCode: code,
		Category: salary.CategoryEarning,
		Mode:     salary.ModeFixed,
		Amount:   decimal.NewFromInt(amount),
	}
}

func residualComponent(code string, amount int64) salary.ComputedComponent {
	return salary.ComputedComponent{
		RuleCode: code,
		Category: salary.CategoryEarning,
		Mode:     salary.ModeResidual,
		Amount:   decimal.NewFromInt(amount),
	}
}

func TestAuditStructure_ValidStructurePasses(t *testing.T) {
	report := auditStructure(testStructure(t, 50000))

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestAuditStructure_Findings(t *testing.T) {
	tests := []struct {
		name      string
		structure salary.Structure
		want      string
	}{
		{
			name:      "no components",
			structure: salary.Structure{WageAmount: decimal.NewFromInt(50000)},
			want:      "structure has no components",
		},
		{
			name: "earnings sum mismatch beyond tolerance",
			structure: salary.Structure{
				WageAmount: decimal.NewFromInt(50000),
				Components: []salary.ComputedComponent{
					earningComponent("BASIC", 20000),
					earningComponent("HRA", 10000),
				},
			},
			want: "earning components sum to 30000, wage is 50000 (difference 20000)",
		},
		{
			name: "more than one residual component",
			structure: salary.Structure{
				WageAmount: decimal.NewFromInt(50000),
				Components: []salary.ComputedComponent{
					residualComponent("SPECIAL", 25000),
					residualComponent("FLEXI", 25000),
				},
			},
			want: "structure has 2 residual components, at most one is allowed",
		},
		{
			name: "duplicate component code",
			structure: salary.Structure{
				WageAmount: decimal.NewFromInt(50000),
				Components: []salary.ComputedComponent{
					earningComponent("BASIC", 25000),
					earningComponent("BASIC", 25000),
				},
			},
			want: "duplicate component code BASIC",
		},
		{
			name: "negative component amount",
			structure: salary.Structure{
				WageAmount: decimal.NewFromInt(50000),
				Components: []salary.ComputedComponent{
					earningComponent("BASIC", 51000),
					earningComponent("ADJUSTMENT", -1000),
				},
			},
			want: "component ADJUSTMENT has negative amount -1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := auditStructure(tt.structure)

			assert.False(t, report.Valid)
			assert.Contains(t, report.Errors, tt.want)
		})
	}
}

func TestAuditStructure_WithinToleranceIsValid(t *testing.T) {
	structure := salary.Structure{
		WageAmount: decimal.RequireFromString("50000.01"),
		Components: []salary.ComputedComponent{
			earningComponent("BASIC", 20000),
			earningComponent("SPECIAL", 30000),
		},
	}

	report := auditStructure(structure)

	assert.True(t, report.Valid)
}

func TestAuditStructure_RepeatedCallsAgree(t *testing.T) {
	structure := salary.Structure{
		WageAmount: decimal.NewFromInt(50000),
		Components: []salary.ComputedComponent{
			earningComponent("BASIC", 20000),
			residualComponent("SPECIAL", 20000),
			residualComponent("FLEXI", 10000),
		},
	}

	first := auditStructure(structure)
	second := auditStructure(structure)

	require.False(t, first.Valid)
	assert.Equal(t, first, second)
}
