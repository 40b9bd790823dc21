package economy

import (
	"github.com/shopspring/decimal"

	"github.com/stork/leave-engine/leave"
)

var (
	twelve   = decimal.NewFromInt(12)
	fiftyTwo = decimal.NewFromInt(52)
	six      = decimal.NewFromInt(6)
	rate100  = decimal.NewFromInt(1)
	rate80   = decimal.NewFromFloat(0.8)
)

// Calculator performs per-scenario economic arithmetic against one set of
// regulatory constants. Stateless beyond the config; safe for concurrent use.
type Calculator struct {
	Reg Regulatory
}

// NewCalculator returns a calculator bound to the given constants.
func NewCalculator(reg Regulatory) Calculator {
	return Calculator{Reg: reg}
}

// AnnualSalary converts a monthly salary to annual.
func AnnualSalary(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(twelve)
}

// Basis is the salary NAV pays against: annual salary capped at 6G,
// unless the employer covers the part above the cap.
func (c Calculator) Basis(monthlySalary decimal.Decimal, employerCoversAbove6G bool) decimal.Decimal {
	annual := AnnualSalary(monthlySalary)
	if employerCoversAbove6G {
		return annual
	}
	cap := c.Reg.BaseAmountG.Mul(six)
	if annual.GreaterThan(cap) {
		return cap
	}
	return annual
}

// NAVPayout is the weekly-rate payout model: (basis / 52) * weeks * rate.
// Mid-week partial entitlements are deliberately ignored.
func (c Calculator) NAVPayout(basis decimal.Decimal, weeks int, coverage leave.Coverage) decimal.Decimal {
	return basis.Div(fiftyTwo).
		Mul(decimal.NewFromInt(int64(weeks))).
		Mul(coverageRate(coverage))
}

// CommissionLoss assumes variable income is forfeited entirely during
// leave, prorated by elapsed months (weeks / 4.33).
func (c Calculator) CommissionLoss(monthlyCommission decimal.Decimal, weeks int) decimal.Decimal {
	return monthlyCommission.
		Mul(decimal.NewFromInt(int64(weeks))).
		Div(c.Reg.WeeksPerMonth)
}

// DailyRate is the working-day rate: monthly salary / 21.7.
func (c Calculator) DailyRate(monthlySalary decimal.Decimal) decimal.Decimal {
	return monthlySalary.Div(c.Reg.WorkdaysPerMonth)
}

// GapCost assigns the gap to the parent with the LOWER daily rate — the
// family loses least by having the lower earner take unpaid leave — and
// prices it at that rate times gap days. An absent father economy means
// the father is never the lower earner.
func (c Calculator) GapCost(mother ParentEconomy, father *ParentEconomy, gapDays int) (decimal.Decimal, leave.Parent) {
	takenBy := leave.Mother
	rate := c.DailyRate(mother.MonthlySalary)

	if father != nil {
		fatherRate := c.DailyRate(father.MonthlySalary)
		if fatherRate.LessThan(rate) {
			takenBy = leave.Father
			rate = fatherRate
		}
	}

	cost := rate.Mul(decimal.NewFromInt(int64(gapDays)))
	return cost, takenBy
}

// FeriepengerLoss is the holiday-pay accrual lost during leave. If the
// employer pays salary during leave, accrual continues in full and the
// loss is zero. If NAV pays directly, accrual stops after the tier's cap:
// loss = (annual * rate / 52) * excess weeks.
func (c Calculator) FeriepengerLoss(econ ParentEconomy, weeks int, coverage leave.Coverage) decimal.Decimal {
	if econ.EmployerPaysFerie {
		return decimal.Zero
	}
	excess := weeks - c.Reg.AccrualCapWeeks(int(coverage))
	if excess <= 0 {
		return decimal.Zero
	}
	annual := AnnualSalary(econ.MonthlySalary)
	return annual.Mul(c.Reg.FeriepengerRate).
		Div(fiftyTwo).
		Mul(decimal.NewFromInt(int64(excess)))
}

// Scenario computes one coverage tier's result. The gap MUST be the gap
// computed for this tier's own timeline; tiers have different week counts
// and therefore different gaps.
func (c Calculator) Scenario(coverage leave.Coverage, mother ParentEconomy, father *ParentEconomy, sharedWeeksToMother int, gap leave.GapInfo) ScenarioResult {
	cfg := leave.ConfigFor(coverage)

	motherWeeks := cfg.PreBirthWeeks + cfg.MotherQuota + sharedWeeksToMother
	fatherWeeks := cfg.FatherQuota + cfg.SharedWeeks - sharedWeeksToMother

	nav := c.NAVPayout(c.Basis(mother.MonthlySalary, mother.EmployerCoversAbove6G), motherWeeks, coverage)
	commission := c.CommissionLoss(mother.MonthlyCommissionLoss, motherWeeks)
	feriepenger := c.FeriepengerLoss(mother, motherWeeks, coverage)

	if father != nil {
		nav = nav.Add(c.NAVPayout(c.Basis(father.MonthlySalary, father.EmployerCoversAbove6G), fatherWeeks, coverage))
		commission = commission.Add(c.CommissionLoss(father.MonthlyCommissionLoss, fatherWeeks))
		feriepenger = feriepenger.Add(c.FeriepengerLoss(*father, fatherWeeks, coverage))
	}

	gapCost, gapTakenBy := c.GapCost(mother, father, gap.Days)

	total := nav.Sub(commission).Sub(gapCost).Sub(feriepenger)

	return ScenarioResult{
		Coverage: coverage,
		Total:    total,
		Breakdown: Breakdown{
			NAVPayout:       nav,
			CommissionLoss:  commission,
			GapCost:         gapCost,
			GapTakenBy:      gapTakenBy,
			FeriepengerLoss: feriepenger,
		},
	}
}

func coverageRate(c leave.Coverage) decimal.Decimal {
	if c == leave.Coverage80 {
		return rate80
	}
	return rate100
}
