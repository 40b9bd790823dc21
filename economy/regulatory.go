package economy

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Regulatory holds the yearly-updated statutory constants. These are
// external facts injected as configuration, never negotiated in code.
// Defaults ship in-code; a YAML file can override them when G is adjusted.
type Regulatory struct {
	// BaseAmountG is the yearly base amount "G". NAV pays nothing above
	// 6G absent an employer top-up.
	BaseAmountG decimal.Decimal `yaml:"base_amount_g"`

	// FeriepengerRate is the holiday-pay accrual rate on annual salary.
	FeriepengerRate decimal.Decimal `yaml:"feriepenger_rate"`

	// AccrualCapWeeks100/80: NAV accrues feriepenger only for this many
	// leave weeks when paying directly; the caps differ by tier.
	AccrualCapWeeks100 int `yaml:"accrual_cap_weeks_100"`
	AccrualCapWeeks80  int `yaml:"accrual_cap_weeks_80"`

	// WeeksPerMonth and WorkdaysPerMonth are the standard proration
	// constants (average month).
	WeeksPerMonth    decimal.Decimal `yaml:"weeks_per_month"`
	WorkdaysPerMonth decimal.Decimal `yaml:"workdays_per_month"`

	// SmallDifference is the threshold under which the comparison is
	// reported as "too close to call on money alone".
	SmallDifference decimal.Decimal `yaml:"small_difference"`
}

// DefaultRegulatory returns the constants for the current G year.
func DefaultRegulatory() Regulatory {
	return Regulatory{
		BaseAmountG:        decimal.NewFromInt(130160),
		FeriepengerRate:    decimal.NewFromFloat(0.102),
		AccrualCapWeeks100: 12,
		AccrualCapWeeks80:  15,
		WeeksPerMonth:      decimal.NewFromFloat(4.33),
		WorkdaysPerMonth:   decimal.NewFromFloat(21.7),
		SmallDifference:    decimal.NewFromInt(10000),
	}
}

// LoadRegulatory reads overrides from a YAML file, starting from the
// defaults so a partial file is valid.
func LoadRegulatory(path string) (Regulatory, error) {
	reg := DefaultRegulatory()

	data, err := os.ReadFile(path)
	if err != nil {
		return reg, fmt.Errorf("read regulatory config: %w", err)
	}
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return reg, fmt.Errorf("parse regulatory config: %w", err)
	}
	return reg, nil
}

// AccrualCapWeeks returns the feriepenger accrual cap for a coverage tier.
func (r Regulatory) AccrualCapWeeks(cov int) int {
	if cov == 80 {
		return r.AccrualCapWeeks80
	}
	return r.AccrualCapWeeks100
}
