package salary

import (
	"testing"
	"time"

	"github.com/apexhr/hrm-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStructure(t *testing.T, wage int64) salary.Structure {
	t.Helper()
	plan := mustPlan(t, standardRules())
	result, err := Evaluate(decimal.NewFromInt(wage), plan, discardLogger())
	require.NoError(t, err)

	return salary.Structure{
		ID:           "structure-1",
		EmployeeID:   "employee-1",
		WageAmount:   decimal.NewFromInt(wage),
		PayFrequency: salary.PayFrequencyMonthly,
		Status:       salary.StructureStatusActive,
		Components:   result.Components,
	}
}

func TestBuildSlip_LossOfPayForAbsentDays(t *testing.T) {
	svc := &SalaryServiceImpl{logger: discardLogger()}
	structure := testStructure(t, 44000)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	slip, err := svc.buildSlip(structure, salary.GenerateSlipRequest{
		EmployeeID:  "employee-1",
		WorkingDays: 22,
		PresentDays: 20,
		LeaveDays:   0,
	}, start, end)
	require.NoError(t, err)

	assert.Equal(t, 2, slip.AbsentDays)
	assert.True(t, slip.Snapshot.PerDayWage.Equal(decimal.NewFromInt(2000)))
	assert.True(t, slip.LossOfPay.Equal(decimal.NewFromInt(4000)))
	assert.True(t, slip.GrossSalary.Equal(decimal.NewFromInt(44000)))
	assert.True(t, slip.NetSalary.Equal(decimal.NewFromInt(40000)))
	assert.Equal(t, salary.SlipStatusGenerated, slip.Status)
}

func TestBuildSlip_LeaveDaysAreNotLossOfPay(t *testing.T) {
	svc := &SalaryServiceImpl{logger: discardLogger()}
	structure := testStructure(t, 44000)

	slip, err := svc.buildSlip(structure, salary.GenerateSlipRequest{
		EmployeeID:  "employee-1",
		WorkingDays: 22,
		PresentDays: 20,
		LeaveDays:   2,
	}, time.Now(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, slip.AbsentDays)
	assert.True(t, slip.LossOfPay.IsZero())
	assert.True(t, slip.NetSalary.Equal(decimal.NewFromInt(44000)))
}

func TestBuildSlip_DeductionsReduceNet(t *testing.T) {
	svc := &SalaryServiceImpl{logger: discardLogger()}
	plan := mustPlan(t, []salary.ComponentRule{
		percentRule("BASIC", salary.WageBaseCode, 40, 1),
		residualRule("SPECIAL", 2),
		deductionRule("PF", 1800, 3),
	})
	result, err := Evaluate(decimal.NewFromInt(50000), plan, discardLogger())
	require.NoError(t, err)

	structure := salary.Structure{
		ID:         "structure-1",
		WageAmount: decimal.NewFromInt(50000),
		Components: result.Components,
	}

	slip, err := svc.buildSlip(structure, salary.GenerateSlipRequest{
		EmployeeID:  "employee-1",
		WorkingDays: 20,
		PresentDays: 20,
	}, time.Now(), time.Now())
	require.NoError(t, err)

	assert.True(t, slip.GrossSalary.Equal(decimal.NewFromInt(50000)))
	assert.True(t, slip.TotalDeductions.Equal(decimal.NewFromInt(1800)))
	assert.True(t, slip.NetSalary.Equal(decimal.NewFromInt(48200)))
}

func TestBuildSlip_NegativeAbsentDaysCarriedThrough(t *testing.T) {
	svc := &SalaryServiceImpl{logger: discardLogger()}
	structure := testStructure(t, 44000)

	slip, err := svc.buildSlip(structure, salary.GenerateSlipRequest{
		EmployeeID:  "employee-1",
		WorkingDays: 20,
		PresentDays: 20,
		LeaveDays:   2,
	}, time.Now(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, -2, slip.AbsentDays)
	assert.True(t, slip.LossOfPay.IsNegative())
}

func TestCheckRegenerate(t *testing.T) {
	assert.NoError(t, checkRegenerate(salary.Slip{Status: salary.SlipStatusDraft}))

	// Cancelled slips are excluded by the period lookup, so generation starts
	// over with a fresh slip and this check never sees them.
	for _, status := range []salary.SlipStatus{
		salary.SlipStatusGenerated,
		salary.SlipStatusApproved,
		salary.SlipStatusPaid,
	} {
		err := checkRegenerate(salary.Slip{ID: "slip-1", Status: status})
		assert.ErrorIs(t, err, salary.ErrSlipLocked, "status %s", status)
	}
}
