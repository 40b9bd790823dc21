package leave

// Config is the statutory week table for one coverage tier. These are
// fixed by regulation, not user-editable.
type Config struct {
	TotalWeeks      int
	MotherQuota     int
	FatherQuota     int
	SharedWeeks     int
	PreBirthWeeks   int
	MandatoryWeeks  int
	FatherOnlyTotal int
}

// prematureThresholdWeeks: premature birth extends leave only when the
// child arrives more than this many weeks before the due date.
const prematureThresholdWeeks = 7

var configs = map[Coverage]Config{
	Coverage100: {
		TotalWeeks:      49,
		MotherQuota:     15,
		FatherQuota:     15,
		SharedWeeks:     16,
		PreBirthWeeks:   3,
		MandatoryWeeks:  6,
		FatherOnlyTotal: 40,
	},
	Coverage80: {
		TotalWeeks:      59,
		MotherQuota:     19,
		FatherQuota:     19,
		SharedWeeks:     18,
		PreBirthWeeks:   3,
		MandatoryWeeks:  6,
		FatherOnlyTotal: 49,
	},
}

// ConfigFor returns the week table for a coverage tier. Unknown coverage
// values fall back to 100% — a caller contract violation covered by tests,
// not a recoverable runtime error.
func ConfigFor(c Coverage) Config {
	if cfg, ok := configs[c]; ok {
		return cfg
	}
	return configs[Coverage100]
}
