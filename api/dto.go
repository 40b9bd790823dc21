package api

import (
	"fmt"

	"github.com/stork/leave-engine/calendar"
	"github.com/stork/leave-engine/economy"
	"github.com/stork/leave-engine/leave"
)

// =============================================================================
// REQUEST DTOs
// =============================================================================

// VacationDTO mirrors leave.VacationOption on the wire.
type VacationDTO struct {
	Days              int  `json:"days"`
	DuringFatherLeave bool `json:"duringFatherLeave"`
}

// CalculateRequest carries the wizard inputs. Dates are "YYYY-MM-DD".
type CalculateRequest struct {
	DueDate             string       `json:"dueDate"`
	Coverage            int          `json:"coverage"`
	Rights              string       `json:"rights"`
	SharedWeeksToMother int          `json:"sharedWeeksToMother"`
	OverlapWeeks        int          `json:"overlapWeeks"`
	DaycareStartDate    string       `json:"daycareStartDate"`
	VacationWeeks       int          `json:"vacationWeeks,omitempty"`
	Vacation            *VacationDTO `json:"vacation,omitempty"`
	PrematureWeeks      int          `json:"prematureWeeks,omitempty"`
}

// ToInput validates and converts the request to an engine input.
func (r CalculateRequest) ToInput() (leave.Input, error) {
	due, err := calendar.ParseDateKey(r.DueDate)
	if err != nil {
		return leave.Input{}, fmt.Errorf("dueDate: %w", err)
	}
	daycare, err := calendar.ParseDateKey(r.DaycareStartDate)
	if err != nil {
		return leave.Input{}, fmt.Errorf("daycareStartDate: %w", err)
	}

	var coverage leave.Coverage
	switch r.Coverage {
	case 80:
		coverage = leave.Coverage80
	case 100:
		coverage = leave.Coverage100
	default:
		return leave.Input{}, fmt.Errorf("coverage: must be 80 or 100, got %d", r.Coverage)
	}

	var rights leave.Rights
	switch r.Rights {
	case "both", "":
		rights = leave.RightsBoth
	case "motherOnly":
		rights = leave.RightsMotherOnly
	case "fatherOnly":
		rights = leave.RightsFatherOnly
	default:
		return leave.Input{}, fmt.Errorf("rights: unknown value %q", r.Rights)
	}

	cfg := leave.ConfigFor(coverage)
	if r.SharedWeeksToMother < 0 || r.SharedWeeksToMother > cfg.SharedWeeks {
		return leave.Input{}, fmt.Errorf("sharedWeeksToMother: %d outside [0, %d]",
			r.SharedWeeksToMother, cfg.SharedWeeks)
	}

	in := leave.Input{
		DueDate:             due,
		Coverage:            coverage,
		Rights:              rights,
		SharedWeeksToMother: r.SharedWeeksToMother,
		OverlapWeeks:        r.OverlapWeeks,
		DaycareStart:        daycare,
		VacationWeeks:       r.VacationWeeks,
		PrematureWeeks:      r.PrematureWeeks,
	}
	if r.Vacation != nil {
		in.Vacation = &leave.VacationOption{
			Days:              r.Vacation.Days,
			DuringFatherLeave: r.Vacation.DuringFatherLeave,
		}
	}
	return in, nil
}

// withCoverage returns a copy of the request pinned to one tier, with
// the shared split clamped to that tier's pool (the pools differ: 16
// weeks at 100%, 18 at 80%).
func (r CalculateRequest) withCoverage(cov int) CalculateRequest {
	out := r
	out.Coverage = cov
	pool := leave.ConfigFor(leave.Coverage(cov)).SharedWeeks
	if out.SharedWeeksToMother > pool {
		out.SharedWeeksToMother = pool
	}
	return out
}

// CompareRequest runs both tiers and compares them. The engine is run
// once per tier so each scenario gets its own gap.
type CompareRequest struct {
	Inputs CalculateRequest       `json:"inputs"`
	Mother economy.ParentEconomy  `json:"motherEconomy"`
	Father *economy.ParentEconomy `json:"fatherEconomy,omitempty"`
}

// CompareResponse bundles the comparison with both underlying timelines.
type CompareResponse struct {
	Leave80  leave.Result   `json:"leave80"`
	Leave100 leave.Result   `json:"leave100"`
	Economy  economy.Result `json:"economy"`
}

// =============================================================================
// ERROR ENVELOPE
// =============================================================================

// ErrorResponse is the uniform JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
