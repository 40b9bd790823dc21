/*
Package leave contains the parental-leave scheduling core: the static
coverage configuration and the segment builder that turns wizard inputs
into a time-ordered, non-overlapping set of leave segments per parent.

PURPOSE:
  Given a due date, a coverage tier (80% or 100%), a rights configuration
  and a handful of sliders, produce the full leave timeline: who is home
  when, where the two parents may overlap, and how large the uncovered gap
  before daycare is.

KEY CONCEPTS IN THIS FILE (types.go):
  - Parent/Rights/Coverage: value enums used as tags throughout. Ownership
    of a segment is always by value, never by reference, so results can be
    freely copied and serialized.
  - Segment: one typed interval of one parent's timeline. Start inclusive,
    End exclusive.
  - Result: the canonical, immutable output of Calculate. Consumers never
    mutate a Result; they call Calculate again with different inputs.

DESIGN PRINCIPLES:
  1. Purity: Calculate is deterministic and side-effect free. Identical
     inputs always yield structurally identical output.
  2. Cursor chaining: each parent's segments are emitted in chronological
     order, each starting where the previous one ended. This is the core
     invariant: no gaps and no overlaps within one parent's chain.
  3. Clamping over errors: negative derived values (gap, remaining quota)
     have no domain meaning and clamp to zero.

SEE ALSO:
  - config.go: Statutory week tables per coverage tier
  - builder.go: The Calculate algorithm
*/
package leave

import "time"

// =============================================================================
// ENUMS
// =============================================================================

// Parent tags which parent owns a segment.
type Parent string

const (
	Mother Parent = "mother"
	Father Parent = "father"
)

// Rights describes which parents hold leave entitlement.
type Rights string

const (
	RightsBoth       Rights = "both"
	RightsMotherOnly Rights = "motherOnly"
	RightsFatherOnly Rights = "fatherOnly"
)

// Coverage is the payout tier: 100% of salary over fewer weeks, or 80%
// over more weeks.
type Coverage int

const (
	Coverage100 Coverage = 100
	Coverage80  Coverage = 80
)

// SegmentType is a closed set; adding a type is a compile-visible change,
// not a new string key in a lookup table.
type SegmentType string

const (
	SegmentPreBirth  SegmentType = "preBirth"
	SegmentMandatory SegmentType = "mandatory"
	SegmentQuota     SegmentType = "quota"
	SegmentShared    SegmentType = "shared"
	SegmentOverlap   SegmentType = "overlap"
	SegmentVacation  SegmentType = "vacation"
	SegmentUnpaid    SegmentType = "unpaid"
	SegmentGap       SegmentType = "gap"
)

// =============================================================================
// SEGMENTS AND RESULT
// =============================================================================

// Segment is one typed interval of leave. Start is inclusive, End is
// exclusive. The gap segment carries no parent tag.
type Segment struct {
	Parent Parent      `json:"parent,omitempty"`
	Type   SegmentType `json:"type"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Weeks  int         `json:"weeks"`
}

// ParentSummary is the per-parent envelope of the segment chain.
//
// When rights exclude the mother, her summary collapses to the sentinel
// start == end == dueDate with zero weeks. This is deliberate so that
// downstream code can uniformly read Mother.End as "where the father's
// clock starts"; it is a marker, not a one-day segment.
type ParentSummary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Weeks int       `json:"weeks"`
}

// GapInfo is the uncovered interval between the end of all leave (plus
// trailing vacation) and daycare start. Days and weeks never go negative:
// if daycare opens before leave ends, the gap is zero.
type GapInfo struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Weeks int       `json:"weeks"`
	Days  int       `json:"days"`
}

// Result is the canonical output of Calculate. Treated as immutable once
// produced.
type Result struct {
	Segments []Segment      `json:"segments"`
	Mother   ParentSummary  `json:"mother"`
	Father   *ParentSummary `json:"father,omitempty"`
	Overlap  *ParentSummary `json:"overlap,omitempty"`
	Gap      GapInfo        `json:"gap"`

	// TotalCalendarWeeks spans leave start to the later parent's end.
	// Overlap compresses this total even though each parent still
	// receives their full entitlement.
	TotalCalendarWeeks int `json:"totalCalendarWeeks"`

	// VacationDaysNeeded is the number of working days (net of weekends
	// and public holidays) required to bridge the gap.
	VacationDaysNeeded int `json:"vacationDaysNeeded"`
}

// =============================================================================
// INPUT
// =============================================================================

// VacationOption describes vacation the mother takes immediately after
// her leave. DuringFatherLeave controls whether it delays the father's
// start: if true the vacation overlaps his leave (no delay); if false his
// start is pushed forward by exactly Days.
type VacationOption struct {
	Days              int  `json:"days"`
	DuringFatherLeave bool `json:"duringFatherLeave"`
}

// Input is the full parameter set for Calculate. All dates are calendar
// days at midnight; slider values are expected to be range-clamped by the
// caller (0 <= SharedWeeksToMother <= shared pool size). Out-of-range
// inputs are a contract violation, not a runtime error.
type Input struct {
	DueDate             time.Time
	Coverage            Coverage
	Rights              Rights
	SharedWeeksToMother int
	OverlapWeeks        int
	DaycareStart        time.Time

	// VacationWeeks is trailing vacation appended after the father's
	// last segment.
	VacationWeeks int

	// Vacation is the mother's post-leave vacation, if any.
	Vacation *VacationOption

	// PrematureWeeks is how many weeks before the due date the child was
	// born. Leave is extended only beyond a 7-week-early threshold.
	PrematureWeeks int
}
