package planner_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stork/leave-engine/leave"
	"github.com/stork/leave-engine/planner"
)

func bothAvailability() planner.Availability {
	return planner.AvailabilityFor(leave.ConfigFor(leave.Coverage100), leave.RightsBoth, 8)
}

func TestAvailabilityFor(t *testing.T) {
	cfg := leave.ConfigFor(leave.Coverage100)

	avail := planner.AvailabilityFor(cfg, leave.RightsBoth, 8)
	assert.Equal(t, 26, avail.MotherWeeks) // 3 + 15 + 8
	assert.Equal(t, 23, avail.FatherWeeks) // 15 + (16 - 8)

	avail = planner.AvailabilityFor(cfg, leave.RightsMotherOnly, 0)
	assert.Equal(t, 49, avail.MotherWeeks)
	assert.Equal(t, 0, avail.FatherWeeks)

	avail = planner.AvailabilityFor(cfg, leave.RightsFatherOnly, 0)
	assert.Equal(t, 0, avail.MotherWeeks)
	assert.Equal(t, 40, avail.FatherWeeks)
}

func TestValidate_CleanWizardPlan(t *testing.T) {
	s := planner.NewStoreFromResult(wizardResult(t))
	report := s.Validate(bothAvailability())

	assert.Empty(t, report.Warnings)
	assert.Empty(t, report.Errors)
	assert.False(t, report.Blocking())
}

func TestValidate_OverbookingIsWarningNotError(t *testing.T) {
	// Wizard plan already uses the mother's full 26 weeks; five more
	// weeks of permisjon overbook her quota. That warns but never blocks.
	s := planner.NewStoreFromResult(wizardResult(t))
	require.NoError(t, s.Add(planner.CustomPeriod{
		ID:     uuid.NewString(),
		Type:   planner.PeriodPermisjon,
		Parent: leave.Mother,
		Start:  date(2027, time.September, 1),
		End:    date(2027, time.October, 6),
	}))

	report := s.Validate(bothAvailability())
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "quota_overbooked", report.Warnings[0].Code)
	assert.Empty(t, report.Errors)
	assert.False(t, report.Blocking())
}

func TestValidate_SameParentOverlapIsBlocking(t *testing.T) {
	// A user ferie period on top of the mother's existing leave is a
	// blocking error.
	s := planner.NewStoreFromResult(wizardResult(t))
	require.NoError(t, s.Add(planner.CustomPeriod{
		ID:     uuid.NewString(),
		Type:   planner.PeriodFerie,
		Parent: leave.Mother,
		Start:  date(2026, time.October, 1),
		End:    date(2026, time.October, 8),
	}))

	report := s.Validate(bothAvailability())
	require.NotEmpty(t, report.Errors)
	assert.Equal(t, "period_overlap", report.Errors[0].Code)
	assert.True(t, report.Blocking())
}

func TestValidate_ToleratesUnknownPeriodTypes(t *testing.T) {
	// "annet" periods don't map to a quota; they must not count against
	// it or crash validation.
	s := planner.NewStore()
	require.NoError(t, s.Add(planner.CustomPeriod{
		ID:     uuid.NewString(),
		Type:   planner.PeriodAnnet,
		Parent: leave.Mother,
		Start:  date(2027, time.January, 1),
		End:    date(2027, time.June, 1),
	}))

	report := s.Validate(bothAvailability())
	assert.Empty(t, report.Warnings)
	assert.Empty(t, report.Errors)
}

func TestValidate_DifferentParentsMayOverlap(t *testing.T) {
	// Simultaneous leave across parents is legitimate (overlap weeks);
	// only same-parent overlap blocks.
	s := planner.NewStore()
	require.NoError(t, s.Add(planner.CustomPeriod{
		ID: uuid.NewString(), Type: planner.PeriodPermisjon, Parent: leave.Mother,
		Start: date(2027, time.January, 1), End: date(2027, time.February, 1),
	}))
	require.NoError(t, s.Add(planner.CustomPeriod{
		ID: uuid.NewString(), Type: planner.PeriodPermisjon, Parent: leave.Father,
		Start: date(2027, time.January, 15), End: date(2027, time.February, 15),
	}))

	report := s.Validate(bothAvailability())
	assert.Empty(t, report.Errors)
}
