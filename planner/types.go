/*
Package planner bridges the immutable engine output to a mutable,
user-editable period list, and keeps the two in sync across settings
changes.

PURPOSE:
  The wizard produces a leave.Result; the calendar view edits periods.
  This package owns that translation and the editing rules:

  - Engine segments (except the gap) convert to CustomPeriods; statutory
    minimums (preBirth, mandatory) convert as LOCKED periods.
  - User-added periods survive settings changes verbatim; only
    wizard-derived periods are regenerated.
  - Quota overbooking is a WARNING (non-blocking); same-parent temporal
    overlap is an ERROR (blocking). The distinction is load-bearing.
  - Every edit pushes an inverse onto a bounded undo log (20 entries,
    linear, no redo).

SEE ALSO:
  - store.go: The mutable store and undo log
  - validate.go: Warning/error validation
  - saved_plan.go: Persistence format and PlanStore port
*/
package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/stork/leave-engine/leave"
)

// PeriodType is the user-facing classification of a period.
type PeriodType string

const (
	PeriodPermisjon PeriodType = "permisjon" // statutory leave
	PeriodFerie     PeriodType = "ferie"     // vacation
	PeriodUlonnet   PeriodType = "ulonnet"   // unpaid leave
	PeriodAnnet     PeriodType = "annet"     // anything else
)

// CustomPeriod is the mutable, user-editable record derived from (or
// added alongside) engine segments. Start inclusive, End exclusive,
// normalized to midnight UTC so JSON round-trips exactly.
type CustomPeriod struct {
	ID          string            `json:"id"`
	Type        PeriodType        `json:"type"`
	Parent      leave.Parent      `json:"parent"`
	Start       time.Time         `json:"startDate"`
	End         time.Time         `json:"endDate"`
	Label       string            `json:"label,omitempty"`
	Color       string            `json:"color,omitempty"`
	FromWizard  bool              `json:"isFromWizard"`
	Locked      bool              `json:"isLocked"`
	SegmentType leave.SegmentType `json:"segmentType,omitempty"`
}

// Overlaps reports whether two periods intersect in time.
func (p CustomPeriod) Overlaps(other CustomPeriod) bool {
	return p.Start.Before(other.End) && other.Start.Before(p.End)
}

// periodTypeFor maps a segment type to its editable classification.
func periodTypeFor(t leave.SegmentType) PeriodType {
	switch t {
	case leave.SegmentVacation:
		return PeriodFerie
	case leave.SegmentUnpaid:
		return PeriodUlonnet
	default:
		return PeriodPermisjon
	}
}

// isLockedType: the statutory pre-birth and mandatory post-birth windows
// are not user-editable.
func isLockedType(t leave.SegmentType) bool {
	return t == leave.SegmentPreBirth || t == leave.SegmentMandatory
}

// PeriodsFromResult converts an engine result into editable periods.
// The gap segment is derived state, not an editable period, and is
// excluded.
func PeriodsFromResult(res leave.Result) []CustomPeriod {
	periods := make([]CustomPeriod, 0, len(res.Segments))
	for _, seg := range res.Segments {
		if seg.Type == leave.SegmentGap {
			continue
		}
		periods = append(periods, CustomPeriod{
			ID:          uuid.NewString(),
			Type:        periodTypeFor(seg.Type),
			Parent:      seg.Parent,
			Start:       seg.Start,
			End:         seg.End,
			FromWizard:  true,
			Locked:      isLockedType(seg.Type),
			SegmentType: seg.Type,
		})
	}
	return periods
}
