package economy

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stork/leave-engine/leave"
)

func TestCompareScenarios_DifferenceSignFavors100(t *testing.T) {
	c := testCalc()
	mother := ParentEconomy{MonthlySalary: kr(50000)}

	// Equal (zero) gaps: 100% pays the full rate over fewer weeks, 80%
	// pays 80% over more weeks; with a single parent and no losses the
	// payout delta dominates.
	res := c.CompareScenarios(mother, nil, 8, leave.GapInfo{}, leave.GapInfo{})

	assert.True(t, res.Difference.Equal(res.Scenario100.Total.Sub(res.Scenario80.Total)))
	assert.True(t, res.Difference.IsPositive())
	assert.Contains(t, res.Recommendation, "100%")
}

func TestCompareScenarios_UsesEachScenariosOwnGap(t *testing.T) {
	c := testCalc()
	mother := ParentEconomy{MonthlySalary: kr(50000)}

	// The 100% timeline ends earlier, so it carries the larger gap.
	gap80 := leave.GapInfo{Days: 0}
	gap100 := leave.GapInfo{Days: 70, Weeks: 10}

	res := c.CompareScenarios(mother, nil, 8, gap80, gap100)

	assert.True(t, res.Scenario80.Breakdown.GapCost.IsZero())
	assert.True(t, res.Scenario100.Breakdown.GapCost.IsPositive())
}

func TestCompareScenarios_SmallDifferenceFallback(t *testing.T) {
	c := testCalc()

	// Zero income on both sides: every factor is zero, difference is
	// zero, and the rule table falls through to the small-difference
	// message.
	res := c.CompareScenarios(ParentEconomy{}, nil, 8, leave.GapInfo{}, leave.GapInfo{})

	assert.True(t, res.Difference.IsZero())
	assert.Contains(t, res.Recommendation, "small")
}

func TestCompareScenarios_Deterministic(t *testing.T) {
	c := testCalc()
	mother := ParentEconomy{MonthlySalary: kr(62000), MonthlyCommissionLoss: kr(8000)}
	father := &ParentEconomy{MonthlySalary: kr(48000)}
	gap80 := leave.GapInfo{Days: 10, Weeks: 2}
	gap100 := leave.GapInfo{Days: 80, Weeks: 12}

	first := c.CompareScenarios(mother, father, 10, gap80, gap100)
	second := c.CompareScenarios(mother, father, 10, gap80, gap100)

	assert.Equal(t, first.Recommendation, second.Recommendation)
	assert.True(t, first.Difference.Equal(second.Difference))
}

func TestCompareScenarios_GapDominatedRecommendation(t *testing.T) {
	c := testCalc()
	mother := ParentEconomy{MonthlySalary: kr(50000), EmployerPaysFerie: true}

	// Give the 100% scenario a huge gap so the gap delta dominates the
	// payout delta and 80% wins.
	gap80 := leave.GapInfo{Days: 0}
	gap100 := leave.GapInfo{Days: 120, Weeks: 18}

	res := c.CompareScenarios(mother, nil, 8, gap80, gap100)

	assert.True(t, res.Difference.IsNegative())
	assert.True(t, strings.HasPrefix(res.Recommendation, "80%"))
	assert.Contains(t, res.Recommendation, "gap")
}

func TestLoadRegulatory_MissingFileKeepsDefaults(t *testing.T) {
	reg, err := LoadRegulatory("/nonexistent/regulatory.yaml")
	assert.Error(t, err)
	assert.True(t, reg.BaseAmountG.Equal(decimal.NewFromInt(130160)))
}
