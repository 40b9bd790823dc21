/*
Package sqlite provides the SQLite-backed PlanStore.

PURPOSE:
  Persists SavedPlan documents to a local SQLite file. This is the only
  durable state in the system; everything else is recomputed from inputs.

SEMANTICS:
  Single-slot, last-write-wins. Each plan id maps to one row holding the
  JSON payload; Save upserts. A later edit legitimately overwrites an
  in-flight save — there is no ordering guarantee and no version check.

WAL MODE:
  The database is opened with WAL so readers don't block the writer and
  crash recovery is cheap.

USAGE:
  store, err := sqlite.New("./plans.db")   // or ":memory:" for tests
  if err != nil { ... }
  defer store.Close()

SEE ALSO:
  - planner/saved_plan.go: PlanStore port and SavedPlan format
  - planner/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stork/leave-engine/planner"
)

// Store implements planner.PlanStore on SQLite.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS plans (
	id         TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an ephemeral store.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts the plan payload. Last write wins.
func (s *Store) Save(ctx context.Context, id string, plan planner.SavedPlan) error {
	payload, err := planner.EncodePlan(plan)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO plans (id, version, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		id, plan.Version, string(payload), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save plan %s: %w", id, err)
	}
	return nil
}

// Load returns the stored plan or planner.ErrPlanNotFound.
func (s *Store) Load(ctx context.Context, id string) (planner.SavedPlan, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM plans WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return planner.SavedPlan{}, planner.ErrPlanNotFound
	}
	if err != nil {
		return planner.SavedPlan{}, fmt.Errorf("load plan %s: %w", id, err)
	}
	return planner.DecodePlan([]byte(payload))
}

// Delete removes a plan. Unknown ids return planner.ErrPlanNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return planner.ErrPlanNotFound
	}
	return nil
}
