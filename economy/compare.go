package economy

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stork/leave-engine/leave"
)

// CompareScenarios computes both tiers and the signed difference
// (positive favors 100%). gap80 and gap100 are each tier's OWN gap,
// taken from that tier's LeaveResult.
func (c Calculator) CompareScenarios(mother ParentEconomy, father *ParentEconomy, sharedWeeksToMother int, gap80, gap100 leave.GapInfo) Result {
	s80 := c.Scenario(leave.Coverage80, mother, father, sharedWeeksToMother, gap80)
	s100 := c.Scenario(leave.Coverage100, mother, father, sharedWeeksToMother, gap100)

	diff := s100.Total.Sub(s80.Total)

	return Result{
		Scenario80:     s80,
		Scenario100:    s100,
		Difference:     diff,
		Recommendation: c.recommend(s80, s100, diff),
	}
}

// factor identifies which breakdown line dominates the difference.
type factor int

const (
	factorNAV factor = iota
	factorGap
	factorCommission
	factorFeriepenger
)

// recommend generates the natural-language rationale. This is a rule
// table over the factor deltas, fully deterministic: ties break in fixed
// factor order (NAV, gap, commission, feriepenger).
func (c Calculator) recommend(s80, s100 ScenarioResult, diff decimal.Decimal) string {
	if diff.Abs().LessThanOrEqual(c.Reg.SmallDifference) {
		return fmt.Sprintf(
			"The difference between 100%% and 80%% coverage is small (%s kr or less either way). Choose based on how many weeks you want at home, not on money.",
			c.Reg.SmallDifference.StringFixed(0))
	}

	// Contributions to diff = total100 - total80. Losses enter negated.
	contributions := []struct {
		f     factor
		delta decimal.Decimal
	}{
		{factorNAV, s100.Breakdown.NAVPayout.Sub(s80.Breakdown.NAVPayout)},
		{factorGap, s80.Breakdown.GapCost.Sub(s100.Breakdown.GapCost)},
		{factorCommission, s80.Breakdown.CommissionLoss.Sub(s100.Breakdown.CommissionLoss)},
		{factorFeriepenger, s80.Breakdown.FeriepengerLoss.Sub(s100.Breakdown.FeriepengerLoss)},
	}

	dominant := contributions[0]
	for _, cand := range contributions[1:] {
		if cand.delta.Abs().GreaterThan(dominant.delta.Abs()) {
			dominant = cand
		}
	}

	amount := diff.Abs().StringFixed(0)
	favors100 := diff.IsPositive()

	switch dominant.f {
	case factorGap:
		if favors100 {
			return fmt.Sprintf("100%% coverage comes out %s kr ahead: its longer gap before daycare is still cheaper than the 80%% alternative once the gap is covered by the lower earner's unpaid leave.", amount)
		}
		return fmt.Sprintf("80%% coverage comes out %s kr ahead, mainly because its extra leave weeks shrink the unpaid gap before daycare starts.", amount)
	case factorCommission:
		if favors100 {
			return fmt.Sprintf("100%% coverage comes out %s kr ahead, mainly because the shorter leave period forfeits less variable income (commission).", amount)
		}
		return fmt.Sprintf("80%% coverage comes out %s kr ahead despite the longer period of forfeited commission.", amount)
	case factorFeriepenger:
		if favors100 {
			return fmt.Sprintf("100%% coverage comes out %s kr ahead, mainly because fewer leave weeks fall outside NAV's feriepenger accrual cap.", amount)
		}
		return fmt.Sprintf("80%% coverage comes out %s kr ahead even after the larger feriepenger accrual loss of the longer period.", amount)
	default: // factorNAV
		if favors100 {
			return fmt.Sprintf("100%% coverage comes out %s kr ahead: the higher weekly payout beats what the extra weeks at 80%% recover.", amount)
		}
		return fmt.Sprintf("80%% coverage comes out %s kr ahead: the extra weeks of payout outweigh the lower weekly rate.", amount)
	}
}
