package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/stork/leave-engine/economy"
	"github.com/stork/leave-engine/leave"
)

// SavedPlanVersion tags the persistence format. Bump on breaking changes
// to the shape below.
const SavedPlanVersion = 1

// ErrPlanNotFound is returned by PlanStore.Load for unknown plan ids.
var ErrPlanNotFound = errors.New("plan not found")

// WizardSnapshot captures the wizard inputs as stored. Dates are ISO-8601
// day strings so the format is stable across clients.
type WizardSnapshot struct {
	DueDate             string         `json:"dueDate"`
	DaycareStart        string         `json:"daycareStartDate"`
	Coverage            leave.Coverage `json:"coverage"`
	Rights              leave.Rights   `json:"rights"`
	SharedWeeksToMother int            `json:"sharedWeeksToMother"`
	OverlapWeeks        int            `json:"overlapWeeks"`
	PrematureWeeks      int            `json:"prematureWeeks,omitempty"`
}

// JobSettings holds employment details that don't feed the engine but
// belong to the plan.
type JobSettings struct {
	MotherWorkPercent int `json:"motherWorkPercent"`
	FatherWorkPercent int `json:"fatherWorkPercent"`
}

// EconomySnapshot is the stored economy input.
type EconomySnapshot struct {
	Mother economy.ParentEconomy  `json:"mother"`
	Father *economy.ParentEconomy `json:"father,omitempty"`
}

// SavedPlan is the single externally persisted state format. It must
// round-trip exactly: Decode(Encode(p)) == p for all fields.
type SavedPlan struct {
	Version  int             `json:"version"`
	Wizard   WizardSnapshot  `json:"wizard"`
	Job      JobSettings     `json:"job"`
	Economy  EconomySnapshot `json:"economy"`
	Periods  []CustomPeriod  `json:"periods"`
	AutoSave bool            `json:"autoSave"`
}

// EncodePlan serializes a plan for storage.
func EncodePlan(p SavedPlan) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	return data, nil
}

// DecodePlan is the structural inverse of EncodePlan.
func DecodePlan(data []byte) (SavedPlan, error) {
	var p SavedPlan
	if err := json.Unmarshal(data, &p); err != nil {
		return SavedPlan{}, fmt.Errorf("decode plan: %w", err)
	}
	return p, nil
}

// PlanStore is the persistence port. The core never calls storage
// directly; handlers depend on this interface so tests can stub it to a
// no-op and save failures can degrade to "save skipped".
//
// Semantics are single-slot, last-write-wins: a later Save legitimately
// overwrites an earlier one, with no ordering guarantee relative to
// in-flight saves.
type PlanStore interface {
	Save(ctx context.Context, id string, plan SavedPlan) error
	Load(ctx context.Context, id string) (SavedPlan, error)
	Delete(ctx context.Context, id string) error
}
