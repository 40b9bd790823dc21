/*
Package economy computes the financial side of a leave plan: what NAV pays
under each coverage tier, what variable income is lost, what the daycare
gap costs, and how much holiday-pay accrual disappears — then compares the
80% and 100% scenarios.

PURPOSE:
  The two coverage tiers pay out the same statutory total but over
  different week counts, which changes gap sizes, commission exposure and
  feriepenger accrual. This package quantifies those differences so the
  planner can recommend a tier.

DESIGN PRINCIPLES:
  1. decimal.Decimal for all money. Week and day counts are plain ints.
  2. Each scenario is computed with ITS OWN gap; the 80% gap is never
     reused for the 100% scenario.
  3. The recommendation is a deterministic rule table over the factor
     deltas, not free text: same inputs, same sentence.

SEE ALSO:
  - regulatory.go: Yearly constants (G, rates, accrual caps)
  - calculator.go: Per-scenario arithmetic
  - compare.go: 80-vs-100 comparison and recommendation
*/
package economy

import (
	"github.com/shopspring/decimal"

	"github.com/stork/leave-engine/leave"
)

// ParentEconomy is a pure value object describing one parent's income
// situation. No identity beyond its fields.
type ParentEconomy struct {
	MonthlySalary         decimal.Decimal `json:"monthlySalary"`
	MonthlyCommissionLoss decimal.Decimal `json:"monthlyCommissionLoss"`
	EmployerCoversAbove6G bool            `json:"employerCoversAbove6G"`
	EmployerPaysFerie     bool            `json:"employerPaysFeriepenger"`
}

// Breakdown itemizes one scenario's result.
type Breakdown struct {
	NAVPayout       decimal.Decimal `json:"navPayout"`
	CommissionLoss  decimal.Decimal `json:"commissionLoss"`
	GapCost         decimal.Decimal `json:"gapCost"`
	GapTakenBy      leave.Parent    `json:"gapTakenBy"`
	FeriepengerLoss decimal.Decimal `json:"feriepengeDifference"`
}

// ScenarioResult is the outcome for one coverage tier.
// Total = NAVPayout - CommissionLoss - GapCost - FeriepengerLoss.
type ScenarioResult struct {
	Coverage  leave.Coverage  `json:"coverage"`
	Total     decimal.Decimal `json:"total"`
	Breakdown Breakdown       `json:"breakdown"`
}

// Result compares the two tiers. Difference is signed: positive favors
// 100% coverage.
type Result struct {
	Scenario80     ScenarioResult  `json:"scenario80"`
	Scenario100    ScenarioResult  `json:"scenario100"`
	Difference     decimal.Decimal `json:"difference"`
	Recommendation string          `json:"recommendation"`
}
