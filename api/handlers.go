/*
handlers.go - HTTP API handlers for the leave planning engine

PURPOSE:
  Exposes the scheduling core, the economy comparison, the holiday
  calendar and plan persistence via REST. Handles HTTP parsing, JSON
  serialization, and delegates to the domain packages.

ENDPOINTS:
  Engine:
    POST   /api/leave/calculate        Build one tier's timeline
    POST   /api/economy/compare        Run both tiers + comparison
    GET    /api/holidays?from=&to=     Holiday map for a date range

  Plans:
    PUT    /api/plans/{id}             Save a plan (last write wins)
    GET    /api/plans/{id}             Load a plan
    DELETE /api/plans/{id}             Delete a plan

  Periods (per plan, in-memory session + persisted on each edit):
    POST   /api/plans/{id}/periods           Add user period
    PUT    /api/plans/{id}/periods/{pid}     Update period
    DELETE /api/plans/{id}/periods/{pid}     Delete period
    POST   /api/plans/{id}/undo              Undo last edit
    POST   /api/plans/{id}/reconcile         Re-run engine, keep user periods
    GET    /api/plans/{id}/validate          Quota warnings / overlap errors

ERROR HANDLING:
  400: invalid input (dates, enums, out-of-range sliders)
  404: unknown plan or period
  409: edit rejected (locked period)
  500: internal errors

  Persistence failures during period edits degrade to "save skipped":
  the edit succeeds in memory and the failure is logged, never fatal.

SEE ALSO:
  - dto.go: Request/response shapes
  - server.go: Router and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stork/leave-engine/calendar"
	"github.com/stork/leave-engine/economy"
	"github.com/stork/leave-engine/leave"
	"github.com/stork/leave-engine/planner"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Cal    *calendar.Calendar
	Engine *leave.Engine
	Calc   economy.Calculator
	Plans  planner.PlanStore
	Log    *logrus.Logger

	// Per-plan editing sessions. Each session owns the editable period
	// list and its undo log; the undo log lives only in memory.
	mu       sync.Mutex
	sessions map[string]*planner.Store
}

// NewHandler wires a handler from its collaborators.
func NewHandler(cal *calendar.Calendar, engine *leave.Engine, calc economy.Calculator, plans planner.PlanStore, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{
		Cal:      cal,
		Engine:   engine,
		Calc:     calc,
		Plans:    plans,
		Log:      log,
		sessions: make(map[string]*planner.Store),
	}
}

// =============================================================================
// ENGINE ENDPOINTS
// =============================================================================

// CalculateLeave builds the timeline for the requested tier.
func (h *Handler) CalculateLeave(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid input", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Engine.Calculate(in))
}

// CompareEconomy runs the engine once per tier — each scenario gets its
// own gap — then compares.
func (h *Handler) CompareEconomy(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	in80, err := req.Inputs.withCoverage(80).ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid input", err)
		return
	}
	in100, err := req.Inputs.withCoverage(100).ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid input", err)
		return
	}

	res80 := h.Engine.Calculate(in80)
	res100 := h.Engine.Calculate(in100)
	econ := h.Calc.CompareScenarios(req.Mother, req.Father,
		req.Inputs.SharedWeeksToMother, res80.Gap, res100.Gap)

	writeJSON(w, http.StatusOK, CompareResponse{
		Leave80:  res80,
		Leave100: res100,
		Economy:  econ,
	})
}

// ListHolidays returns the holiday map for a date range.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	from, err := calendar.ParseDateKey(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'from' date", err)
		return
	}
	to, err := calendar.ParseDateKey(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid 'to' date", err)
		return
	}
	writeJSON(w, http.StatusOK, h.Cal.HolidayMap(from, to))
}

// =============================================================================
// PLAN ENDPOINTS
// =============================================================================

// SavePlan stores the plan document. Last write wins.
func (h *Handler) SavePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var plan planner.SavedPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan body", err)
		return
	}
	if plan.Version == 0 {
		plan.Version = planner.SavedPlanVersion
	}

	if err := h.Plans.Save(r.Context(), id, plan); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save plan", err)
		return
	}

	// Refresh the editing session so period ops see the saved list.
	h.mu.Lock()
	if sess, ok := h.sessions[id]; ok {
		sess.Replace(plan.Periods)
	}
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "id": id})
}

// GetPlan loads a plan document.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	plan, err := h.Plans.Load(r.Context(), id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeError(w, http.StatusNotFound, "plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load plan", err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// DeletePlan removes a plan and its session.
func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.Plans.Delete(r.Context(), id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeError(w, http.StatusNotFound, "plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete plan", err)
		return
	}

	h.mu.Lock()
	delete(h.sessions, id)
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// =============================================================================
// PERIOD ENDPOINTS
// =============================================================================

// session returns the editing session for a plan, loading the plan's
// periods into a fresh store on first touch.
func (h *Handler) session(r *http.Request, id string) (*planner.Store, *planner.SavedPlan, error) {
	plan, err := h.Plans.Load(r.Context(), id)
	if err != nil {
		return nil, nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ok := h.sessions[id]
	if !ok {
		sess = planner.NewStore()
		sess.Replace(plan.Periods)
		h.sessions[id] = sess
	}
	return sess, &plan, nil
}

// persist writes the session's periods back to storage. Failures degrade
// to "save skipped": the in-memory edit stands and the error is logged.
func (h *Handler) persist(r *http.Request, id string, plan *planner.SavedPlan, sess *planner.Store) {
	plan.Periods = sess.Periods()
	if err := h.Plans.Save(r.Context(), id, *plan); err != nil {
		h.Log.WithError(err).WithField("plan", id).Warn("save skipped")
	}
}

// AddPeriod inserts a user-added period.
func (h *Handler) AddPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, plan, err := h.session(r, id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeError(w, http.StatusNotFound, "plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load plan", err)
		return
	}

	var p planner.CustomPeriod
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid period body", err)
		return
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Start = calendar.Normalize(p.Start)
	p.End = calendar.Normalize(p.End)
	if !p.Start.Before(p.End) {
		writeError(w, http.StatusBadRequest, "period end must be after start", nil)
		return
	}
	p.FromWizard = false
	p.Locked = false

	if err := sess.Add(p); err != nil {
		writeError(w, http.StatusBadRequest, "failed to add period", err)
		return
	}
	h.persist(r, id, plan, sess)
	writeJSON(w, http.StatusCreated, p)
}

// UpdatePeriod replaces an editable period.
func (h *Handler) UpdatePeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, plan, err := h.session(r, id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeError(w, http.StatusNotFound, "plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load plan", err)
		return
	}

	var p planner.CustomPeriod
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid period body", err)
		return
	}
	p.ID = chi.URLParam(r, "pid")
	p.Start = calendar.Normalize(p.Start)
	p.End = calendar.Normalize(p.End)

	switch err := sess.Update(p); {
	case errors.Is(err, planner.ErrPeriodNotFound):
		writeError(w, http.StatusNotFound, "period not found", err)
		return
	case errors.Is(err, planner.ErrPeriodLocked):
		writeError(w, http.StatusConflict, "period is locked", err)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "failed to update period", err)
		return
	}
	h.persist(r, id, plan, sess)
	writeJSON(w, http.StatusOK, p)
}

// DeletePeriod removes an editable period.
func (h *Handler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, plan, err := h.session(r, id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeError(w, http.StatusNotFound, "plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load plan", err)
		return
	}

	switch err := sess.Delete(chi.URLParam(r, "pid")); {
	case errors.Is(err, planner.ErrPeriodNotFound):
		writeError(w, http.StatusNotFound, "period not found", err)
		return
	case errors.Is(err, planner.ErrPeriodLocked):
		writeError(w, http.StatusConflict, "period is locked", err)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, "failed to delete period", err)
		return
	}
	h.persist(r, id, plan, sess)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UndoPeriod pops the most recent edit.
func (h *Handler) UndoPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, plan, err := h.session(r, id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeError(w, http.StatusNotFound, "plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load plan", err)
		return
	}

	if err := sess.Undo(); err != nil {
		writeError(w, http.StatusBadRequest, "nothing to undo", err)
		return
	}
	h.persist(r, id, plan, sess)
	writeJSON(w, http.StatusOK, sess.Periods())
}

// ReconcilePlan re-runs the engine with new wizard settings and
// regenerates wizard-derived periods, preserving user-added ones.
func (h *Handler) ReconcilePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, plan, err := h.session(r, id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeError(w, http.StatusNotFound, "plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load plan", err)
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	in, err := req.ToInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid input", err)
		return
	}

	sess.Reinitialize(h.Engine.Calculate(in))

	plan.Wizard = planner.WizardSnapshot{
		DueDate:             req.DueDate,
		DaycareStart:        req.DaycareStartDate,
		Coverage:            in.Coverage,
		Rights:              in.Rights,
		SharedWeeksToMother: in.SharedWeeksToMother,
		OverlapWeeks:        in.OverlapWeeks,
		PrematureWeeks:      in.PrematureWeeks,
	}
	h.persist(r, id, plan, sess)
	writeJSON(w, http.StatusOK, sess.Periods())
}

// ValidatePlan reports quota warnings and overlap errors for the current
// period list.
func (h *Handler) ValidatePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, plan, err := h.session(r, id)
	if errors.Is(err, planner.ErrPlanNotFound) {
		writeError(w, http.StatusNotFound, "plan not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load plan", err)
		return
	}

	cfg := leave.ConfigFor(plan.Wizard.Coverage)
	avail := planner.AvailabilityFor(cfg, plan.Wizard.Rights, plan.Wizard.SharedWeeksToMother)
	writeJSON(w, http.StatusOK, sess.Validate(avail))
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
