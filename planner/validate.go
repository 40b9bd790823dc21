package planner

import (
	"fmt"
	"sort"

	"github.com/stork/leave-engine/calendar"
	"github.com/stork/leave-engine/leave"
)

// Severity splits validation findings into non-blocking warnings and
// blocking errors. Overbooking a quota warns; overlapping periods for
// the same parent block. Any reimplementation must keep this split.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is one validation finding.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	PeriodID string   `json:"periodId,omitempty"`
}

// Report groups findings by severity. Blocking() is what the UI gates
// save/continue on.
type Report struct {
	Warnings []Issue `json:"warnings"`
	Errors   []Issue `json:"errors"`
}

// Blocking reports whether any error-severity issue exists.
func (r Report) Blocking() bool { return len(r.Errors) > 0 }

// Availability is the per-parent week budget the current settings allow,
// derived from the coverage config and the shared-pool split.
type Availability struct {
	MotherWeeks int
	FatherWeeks int
}

// AvailabilityFor derives each parent's leave-week budget.
func AvailabilityFor(cfg leave.Config, rights leave.Rights, sharedWeeksToMother int) Availability {
	switch rights {
	case leave.RightsMotherOnly:
		return Availability{
			MotherWeeks: cfg.PreBirthWeeks + cfg.MotherQuota + cfg.SharedWeeks + cfg.FatherQuota,
		}
	case leave.RightsFatherOnly:
		return Availability{FatherWeeks: cfg.FatherOnlyTotal}
	default:
		return Availability{
			MotherWeeks: cfg.PreBirthWeeks + cfg.MotherQuota + sharedWeeksToMother,
			FatherWeeks: cfg.FatherQuota + cfg.SharedWeeks - sharedWeeksToMother,
		}
	}
}

// Validate recomputes quota usage from the CURRENT period list and checks
// temporal consistency. It tolerates user-entered periods that don't map
// to a known segment type: only permisjon periods count against quotas,
// and unknown types simply don't participate.
func (s *Store) Validate(avail Availability) Report {
	periods := s.Periods()
	var report Report

	// Overbooking: used leave weeks per parent vs available. Warning only.
	used := map[leave.Parent]int{}
	for _, p := range periods {
		if p.Type != PeriodPermisjon {
			continue
		}
		used[p.Parent] += calendar.WeeksBetween(p.Start, p.End)
	}
	check := func(parent leave.Parent, available int) {
		if used[parent] > available {
			report.Warnings = append(report.Warnings, Issue{
				Severity: SeverityWarning,
				Code:     "quota_overbooked",
				Message: fmt.Sprintf("%s has %d leave weeks planned but only %d available",
					parent, used[parent], available),
			})
		}
	}
	check(leave.Mother, avail.MotherWeeks)
	check(leave.Father, avail.FatherWeeks)

	// Same-parent overlap: blocking error.
	byParent := map[leave.Parent][]CustomPeriod{}
	for _, p := range periods {
		byParent[p.Parent] = append(byParent[p.Parent], p)
	}
	for _, group := range byParent {
		sort.Slice(group, func(i, j int) bool { return group[i].Start.Before(group[j].Start) })
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if !group[i].Overlaps(group[j]) {
					// Sorted by start: later periods can't reach back.
					break
				}
				report.Errors = append(report.Errors, Issue{
					Severity: SeverityError,
					Code:     "period_overlap",
					Message: fmt.Sprintf("periods %s and %s overlap for parent %s",
						group[i].ID, group[j].ID, group[j].Parent),
					PeriodID: group[j].ID,
				})
			}
		}
	}

	return report
}
