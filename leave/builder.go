/*
builder.go - The leave segment builder

PURPOSE:
  Calculate transforms one Input into one Result. The algorithm walks a
  per-parent date cursor forward, emitting typed segments in chronological
  order:

    mother: preBirth -> mandatory -> remaining quota -> shared share
    father: optional overlap -> remaining quota -> shared share -> vacation

  Each sub-segment starts exactly where the previous one ended, which is
  the invariant that guarantees a contiguous, non-overlapping chain per
  parent. The only legitimate calendar-time overlap between the two
  parents is the explicit overlap segment (simultaneous leave).

PREMATURE BIRTH:
  Leave normally starts preBirth weeks before the due date. If the child
  was born more than 7 weeks early, leave starts earlier still: the
  extension equals the weeks between the actual birth and the would-be
  normal leave start, floored at zero.

GAP:
  The gap runs from the later of the two parents' ends (including any
  trailing vacation) to daycare start, clamped to >= 0 days. The tool
  never reports a negative gap.

SEE ALSO:
  - types.go: Input/Result shapes and invariants
  - config.go: Statutory week tables
  - calendar/: Date arithmetic and workday counting
*/
package leave

import (
	"time"

	"github.com/stork/leave-engine/calendar"
)

// Engine builds leave timelines. It holds the holiday calendar used to
// count the working days needed to bridge a gap; everything else is pure
// arithmetic on the Input.
type Engine struct {
	cal *calendar.Calendar
}

// NewEngine returns an engine backed by the given holiday calendar.
func NewEngine(cal *calendar.Calendar) *Engine {
	return &Engine{cal: cal}
}

// Calculate produces the complete leave timeline for one scenario.
// Pure and deterministic: identical inputs yield identical results.
func (e *Engine) Calculate(in Input) Result {
	cfg := ConfigFor(in.Coverage)

	due := calendar.Normalize(in.DueDate)
	daycare := calendar.Normalize(in.DaycareStart)

	// Premature extension: only beyond the 7-week threshold, and only by
	// the weeks between actual birth and the normal leave start.
	extension := 0
	if in.PrematureWeeks > prematureThresholdWeeks {
		extension = in.PrematureWeeks - cfg.PreBirthWeeks
		if extension < 0 {
			extension = 0
		}
	}
	leaveStart := calendar.SubtractWeeks(due, cfg.PreBirthWeeks+extension)

	var segments []Segment
	emit := func(parent Parent, typ SegmentType, cursor time.Time, weeks int) time.Time {
		if weeks <= 0 {
			return cursor
		}
		end := calendar.AddWeeks(cursor, weeks)
		segments = append(segments, Segment{
			Parent: parent, Type: typ, Start: cursor, End: end, Weeks: weeks,
		})
		return end
	}

	// -------------------------------------------------------------------------
	// Mother chain
	// -------------------------------------------------------------------------

	var mother ParentSummary
	if in.Rights == RightsFatherOnly {
		// Sentinel: zero-length marker at the due date, so Mother.End
		// still reads as "where the father's clock starts".
		mother = ParentSummary{Start: due, End: due, Weeks: 0}
	} else {
		cursor := leaveStart
		cursor = emit(Mother, SegmentPreBirth, cursor, cfg.PreBirthWeeks+extension)
		cursor = emit(Mother, SegmentMandatory, cursor, cfg.MandatoryWeeks)
		cursor = emit(Mother, SegmentQuota, cursor, cfg.MotherQuota-cfg.MandatoryWeeks)

		sharedToMother := in.SharedWeeksToMother
		if in.Rights == RightsMotherOnly {
			// A sole-rights parent receives the entire entitlement.
			sharedToMother = cfg.SharedWeeks
		}
		cursor = emit(Mother, SegmentShared, cursor, sharedToMother)
		if in.Rights == RightsMotherOnly {
			cursor = emit(Mother, SegmentQuota, cursor, cfg.FatherQuota)
		}

		mother = ParentSummary{
			Start: leaveStart,
			End:   cursor,
			Weeks: calendar.WeeksBetween(leaveStart, cursor),
		}
	}

	// Mother's post-leave vacation. Appended at her leave end; whether it
	// delays the father is the caller's policy switch.
	vacationEnd := mother.End
	fatherDelayDays := 0
	if in.Rights != RightsFatherOnly && in.Vacation != nil && in.Vacation.Days > 0 {
		end := calendar.AddDays(mother.End, in.Vacation.Days)
		segments = append(segments, Segment{
			Parent: Mother,
			Type:   SegmentVacation,
			Start:  mother.End,
			End:    end,
			Weeks:  calendar.WeeksBetween(mother.End, end),
		})
		vacationEnd = end
		if !in.Vacation.DuringFatherLeave {
			fatherDelayDays = in.Vacation.Days
		}
	}

	// -------------------------------------------------------------------------
	// Father chain
	// -------------------------------------------------------------------------

	var father *ParentSummary
	var overlap *ParentSummary
	fatherVacationEnd := time.Time{}

	switch in.Rights {
	case RightsMotherOnly:
		// No father segment exists.

	case RightsFatherOnly:
		cursor := leaveStart
		end := emit(Father, SegmentQuota, cursor, cfg.FatherOnlyTotal)
		father = &ParentSummary{Start: cursor, End: end, Weeks: cfg.FatherOnlyTotal}
		fatherVacationEnd = emit(Father, SegmentVacation, end, in.VacationWeeks)

	default: // RightsBoth
		start := calendar.AddDays(mother.End, fatherDelayDays)
		start = calendar.SubtractWeeks(start, in.OverlapWeeks)
		cursor := start

		if in.OverlapWeeks > 0 {
			end := emit(Father, SegmentOverlap, cursor, in.OverlapWeeks)
			overlap = &ParentSummary{Start: cursor, End: end, Weeks: in.OverlapWeeks}
			cursor = end
		}

		quotaRemaining := cfg.FatherQuota - in.OverlapWeeks
		if quotaRemaining < 0 {
			quotaRemaining = 0
		}
		cursor = emit(Father, SegmentQuota, cursor, quotaRemaining)
		cursor = emit(Father, SegmentShared, cursor, cfg.SharedWeeks-in.SharedWeeksToMother)

		father = &ParentSummary{
			Start: start,
			End:   cursor,
			Weeks: calendar.WeeksBetween(start, cursor),
		}
		fatherVacationEnd = emit(Father, SegmentVacation, cursor, in.VacationWeeks)
	}

	// -------------------------------------------------------------------------
	// Gap and totals
	// -------------------------------------------------------------------------

	leaveEnd := vacationEnd
	if father != nil {
		if father.End.After(leaveEnd) {
			leaveEnd = father.End
		}
		if fatherVacationEnd.After(leaveEnd) {
			leaveEnd = fatherVacationEnd
		}
	}

	gap := calculateGap(leaveEnd, daycare)
	if gap.Days > 0 {
		segments = append(segments, Segment{
			Type: SegmentGap, Start: gap.Start, End: gap.End, Weeks: gap.Weeks,
		})
	}

	lastParentEnd := mother.End
	if father != nil && father.End.After(lastParentEnd) {
		lastParentEnd = father.End
	}
	return Result{
		Segments:           segments,
		Mother:             mother,
		Father:             father,
		Overlap:            overlap,
		Gap:                gap,
		TotalCalendarWeeks: calendar.WeeksBetween(leaveStart, lastParentEnd),
		VacationDaysNeeded: e.cal.WorkdaysBetween(gap.Start, gap.End),
	}
}

// calculateGap clamps the uncovered interval to non-negative. A daycare
// start before leave end means zero gap, never a negative one.
func calculateGap(leaveEnd, daycareStart time.Time) GapInfo {
	days := calendar.DaysBetween(leaveEnd, daycareStart)
	if days <= 0 {
		return GapInfo{Start: leaveEnd, End: leaveEnd, Weeks: 0, Days: 0}
	}
	return GapInfo{
		Start: leaveEnd,
		End:   daycareStart,
		Weeks: calendar.WeeksBetween(leaveEnd, daycareStart),
		Days:  days,
	}
}
