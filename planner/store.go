package planner

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stork/leave-engine/calendar"
	"github.com/stork/leave-engine/leave"
)

// undoCapacity bounds the linear undo log. No redo, no branching.
const undoCapacity = 20

var (
	// ErrPeriodNotFound is returned when an update/delete targets an
	// unknown period id.
	ErrPeriodNotFound = errors.New("period not found")

	// ErrPeriodLocked is returned when an edit targets a statutory
	// (locked) period.
	ErrPeriodLocked = errors.New("period is locked")

	// ErrNothingToUndo is returned when the undo log is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Store is the single stateful component of the core: the editable
// period list plus its undo log. Writes are serialized with a mutex
// because update/delete read-then-write against the current list and the
// store is reachable from HTTP handlers.
type Store struct {
	mu      sync.Mutex
	periods []CustomPeriod
	undo    []undoEntry
}

// undoEntry is one inverse command.
type undoEntry struct {
	kind     undoKind
	periodID string
	snapshot CustomPeriod // previous value for update, removed value for delete
}

type undoKind int

const (
	undoAdd undoKind = iota + 1 // inverse: remove the added period
	undoUpdate                  // inverse: restore the previous value
	undoDelete                  // inverse: re-insert the removed period
)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFromResult seeds a store with the wizard-derived periods of an
// engine result.
func NewStoreFromResult(res leave.Result) *Store {
	return &Store{periods: PeriodsFromResult(res)}
}

// Periods returns a copy of the current period list.
func (s *Store) Periods() []CustomPeriod {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CustomPeriod, len(s.periods))
	copy(out, s.periods)
	return out
}

// Replace swaps in a full period list (used when loading a saved plan).
// Clears the undo log; undo never crosses a load boundary.
func (s *Store) Replace(periods []CustomPeriod) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.periods = make([]CustomPeriod, len(periods))
	copy(s.periods, periods)
	s.undo = nil
}

// Add inserts a user period and records its inverse.
func (s *Store) Add(p CustomPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		return fmt.Errorf("add period: empty id")
	}
	for _, existing := range s.periods {
		if existing.ID == p.ID {
			return fmt.Errorf("add period %s: duplicate id", p.ID)
		}
	}
	s.periods = append(s.periods, p)
	s.pushUndo(undoEntry{kind: undoAdd, periodID: p.ID})
	return nil
}

// Update replaces a period by id. Locked periods reject edits.
func (s *Store) Update(p CustomPeriod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.periods {
		if existing.ID != p.ID {
			continue
		}
		if existing.Locked {
			return fmt.Errorf("update period %s: %w", p.ID, ErrPeriodLocked)
		}
		s.pushUndo(undoEntry{kind: undoUpdate, periodID: p.ID, snapshot: existing})
		s.periods[i] = p
		return nil
	}
	return fmt.Errorf("update period %s: %w", p.ID, ErrPeriodNotFound)
}

// Delete removes a period by id. Locked periods reject deletion.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.periods {
		if existing.ID != id {
			continue
		}
		if existing.Locked {
			return fmt.Errorf("delete period %s: %w", id, ErrPeriodLocked)
		}
		s.pushUndo(undoEntry{kind: undoDelete, periodID: id, snapshot: existing})
		s.periods = append(s.periods[:i], s.periods[i+1:]...)
		return nil
	}
	return fmt.Errorf("delete period %s: %w", id, ErrPeriodNotFound)
}

// Undo pops the most recent inverse and applies it.
func (s *Store) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	entry := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	switch entry.kind {
	case undoAdd:
		for i, p := range s.periods {
			if p.ID == entry.periodID {
				s.periods = append(s.periods[:i], s.periods[i+1:]...)
				break
			}
		}
	case undoUpdate:
		for i, p := range s.periods {
			if p.ID == entry.periodID {
				s.periods[i] = entry.snapshot
				break
			}
		}
	case undoDelete:
		s.periods = append(s.periods, entry.snapshot)
	}
	return nil
}

// pushUndo appends an inverse, dropping the oldest entry at capacity.
func (s *Store) pushUndo(e undoEntry) {
	if len(s.undo) >= undoCapacity {
		copy(s.undo, s.undo[1:])
		s.undo = s.undo[:len(s.undo)-1]
	}
	s.undo = append(s.undo, e)
}

// Reinitialize regenerates wizard-derived periods from a fresh engine
// result while preserving every user-added period verbatim, even if it
// now conflicts with the regenerated ones. Conflict resolution is the
// user's call, surfaced by Validate, never silently auto-resolved here.
func (s *Store) Reinitialize(res leave.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []CustomPeriod
	for _, p := range s.periods {
		if !p.FromWizard {
			kept = append(kept, p)
		}
	}
	s.periods = append(PeriodsFromResult(res), kept...)
	s.undo = nil
}

// Gap recomputes the uncovered interval from the CURRENT period list,
// not the original engine segments: the gap runs from the latest period
// end to daycare start, clamped to zero.
func (s *Store) Gap(daycareStart time.Time) leave.GapInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	daycareStart = calendar.Normalize(daycareStart)

	var latest time.Time
	for _, p := range s.periods {
		if p.End.After(latest) {
			latest = p.End
		}
	}
	if latest.IsZero() || !latest.Before(daycareStart) {
		end := daycareStart
		if latest.After(end) {
			end = latest
		}
		return leave.GapInfo{Start: end, End: end}
	}
	return leave.GapInfo{
		Start: latest,
		End:   daycareStart,
		Days:  calendar.DaysBetween(latest, daycareStart),
		Weeks: calendar.WeeksBetween(latest, daycareStart),
	}
}
