package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stork/leave-engine/planner"
	"github.com/stork/leave-engine/planner/store"
)

func TestMemory_SaveLoadDelete(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	plan := planner.SavedPlan{
		Version:  planner.SavedPlanVersion,
		Wizard:   planner.WizardSnapshot{DueDate: "2026-09-01", DaycareStart: "2027-08-01"},
		AutoSave: true,
	}

	require.NoError(t, m.Save(ctx, "plan-1", plan))

	loaded, err := m.Load(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, plan.Wizard, loaded.Wizard)
	assert.True(t, loaded.AutoSave)

	require.NoError(t, m.Delete(ctx, "plan-1"))
	_, err = m.Load(ctx, "plan-1")
	assert.ErrorIs(t, err, planner.ErrPlanNotFound)
}

func TestMemory_LastWriteWins(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	first := planner.SavedPlan{Version: 1, Wizard: planner.WizardSnapshot{DueDate: "2026-09-01"}}
	second := planner.SavedPlan{Version: 1, Wizard: planner.WizardSnapshot{DueDate: "2026-10-01"}}

	require.NoError(t, m.Save(ctx, "plan-1", first))
	require.NoError(t, m.Save(ctx, "plan-1", second))

	loaded, err := m.Load(ctx, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-01", loaded.Wizard.DueDate)
}

func TestMemory_UnknownPlan(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	_, err := m.Load(ctx, "missing")
	assert.ErrorIs(t, err, planner.ErrPlanNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "missing"), planner.ErrPlanNotFound)
}
