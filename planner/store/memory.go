// Package store provides PlanStore implementations.
package store

import (
	"context"
	"sync"

	"github.com/stork/leave-engine/planner"
)

// Memory is an in-memory PlanStore for tests and development. Plans are
// deep-copied through JSON on the way in and out so callers never share
// slices with the store.
type Memory struct {
	mu    sync.RWMutex
	plans map[string][]byte
}

// NewMemory returns an empty in-memory plan store.
func NewMemory() *Memory {
	return &Memory{plans: make(map[string][]byte)}
}

func (m *Memory) Save(_ context.Context, id string, plan planner.SavedPlan) error {
	data, err := planner.EncodePlan(plan)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[id] = data
	return nil
}

func (m *Memory) Load(_ context.Context, id string) (planner.SavedPlan, error) {
	m.mu.RLock()
	data, ok := m.plans[id]
	m.mu.RUnlock()

	if !ok {
		return planner.SavedPlan{}, planner.ErrPlanNotFound
	}
	return planner.DecodePlan(data)
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.plans[id]; !ok {
		return planner.ErrPlanNotFound
	}
	delete(m.plans, id)
	return nil
}
