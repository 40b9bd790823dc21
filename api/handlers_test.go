package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stork/leave-engine/api"
	"github.com/stork/leave-engine/calendar"
	"github.com/stork/leave-engine/economy"
	"github.com/stork/leave-engine/leave"
	"github.com/stork/leave-engine/planner"
	"github.com/stork/leave-engine/planner/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func kr(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newTestServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()

	plans := store.NewMemory()
	cal := calendar.NewCalendar()
	log := logrus.New()
	log.SetOutput(io.Discard)

	h := api.NewHandler(cal, leave.NewEngine(cal), economy.NewCalculator(economy.DefaultRegulatory()), plans, log)
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv, plans
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func calcRequest() api.CalculateRequest {
	return api.CalculateRequest{
		DueDate:             "2026-09-01",
		Coverage:            100,
		Rights:              "both",
		SharedWeeksToMother: 8,
		DaycareStartDate:    "2027-08-01",
	}
}

func seedPlan(t *testing.T, srv *httptest.Server, id string) {
	t.Helper()

	eng := leave.NewEngine(calendar.NewCalendar())
	res := eng.Calculate(leave.Input{
		DueDate:             calendar.Date(2026, time.September, 1),
		Coverage:            leave.Coverage100,
		Rights:              leave.RightsBoth,
		SharedWeeksToMother: 8,
		DaycareStart:        calendar.Date(2027, time.August, 1),
	})
	plan := planner.SavedPlan{
		Version: planner.SavedPlanVersion,
		Wizard: planner.WizardSnapshot{
			DueDate:             "2026-09-01",
			DaycareStart:        "2027-08-01",
			Coverage:            leave.Coverage100,
			Rights:              leave.RightsBoth,
			SharedWeeksToMother: 8,
		},
		Periods: planner.PeriodsFromResult(res),
	}
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/plans/"+id, plan)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// ENGINE ENDPOINTS
// =============================================================================

func TestCalculateLeave(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/leave/calculate", calcRequest())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeBody[leave.Result](t, resp)
	assert.Equal(t, 26, res.Mother.Weeks)
	require.NotNil(t, res.Father)
	assert.Equal(t, 12, res.Gap.Days)
}

func TestCalculateLeave_InvalidInput(t *testing.T) {
	srv, _ := newTestServer(t)

	req := calcRequest()
	req.DueDate = "09/01/2026"
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/leave/calculate", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	req = calcRequest()
	req.Coverage = 90
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/leave/calculate", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	req = calcRequest()
	req.SharedWeeksToMother = 99
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/leave/calculate", req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCompareEconomy_RunsBothTiers(t *testing.T) {
	srv, _ := newTestServer(t)

	body := api.CompareRequest{
		Inputs: calcRequest(),
		Mother: economy.ParentEconomy{MonthlySalary: kr(50000)},
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/economy/compare", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	res := decodeBody[api.CompareResponse](t, resp)

	// Each tier carries its own gap; at 80% the longer timeline closes it.
	assert.Equal(t, 12, res.Leave100.Gap.Days)
	assert.Equal(t, 0, res.Leave80.Gap.Days)
	assert.NotEmpty(t, res.Economy.Recommendation)
}

func TestListHolidays(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/holidays?from=2026-05-01&to=2026-05-31")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m := decodeBody[map[string]string](t, resp)
	assert.Equal(t, "Grunnlovsdagen", m["2026-05-17"])

	resp, err = http.Get(srv.URL + "/api/holidays?from=bad")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// PLAN ENDPOINTS
// =============================================================================

func TestPlanLifecycle(t *testing.T) {
	srv, _ := newTestServer(t)
	seedPlan(t, srv, "plan-1")

	resp, err := http.Get(srv.URL + "/api/plans/plan-1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	plan := decodeBody[planner.SavedPlan](t, resp)
	assert.Equal(t, "2026-09-01", plan.Wizard.DueDate)
	assert.NotEmpty(t, plan.Periods)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/plans/plan-1", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/plans/plan-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGetPlan_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/plans/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// PERIOD ENDPOINTS
// =============================================================================

func TestPeriodAddAndUndo(t *testing.T) {
	srv, _ := newTestServer(t)
	seedPlan(t, srv, "plan-1")

	period := planner.CustomPeriod{
		Type:   planner.PeriodFerie,
		Parent: leave.Father,
		Start:  calendar.Date(2027, time.August, 2),
		End:    calendar.Date(2027, time.August, 9),
		Label:  "cabin week",
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/plans/plan-1/periods", period)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[planner.CustomPeriod](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.FromWizard)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/plans/plan-1/undo", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	periods := decodeBody[[]planner.CustomPeriod](t, resp)
	for _, p := range periods {
		assert.NotEqual(t, created.ID, p.ID)
	}

	// Nothing left to undo.
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/plans/plan-1/undo", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestPeriodUpdate_LockedConflicts(t *testing.T) {
	srv, _ := newTestServer(t)
	seedPlan(t, srv, "plan-1")

	resp, err := http.Get(srv.URL + "/api/plans/plan-1")
	require.NoError(t, err)
	plan := decodeBody[planner.SavedPlan](t, resp)

	var locked planner.CustomPeriod
	for _, p := range plan.Periods {
		if p.Locked {
			locked = p
			break
		}
	}
	require.NotEmpty(t, locked.ID)

	locked.End = calendar.AddDays(locked.End, 7)
	resp = doJSON(t, http.MethodPut, srv.URL+"/api/plans/plan-1/periods/"+locked.ID, locked)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestReconcilePreservesUserPeriods(t *testing.T) {
	srv, _ := newTestServer(t)
	seedPlan(t, srv, "plan-1")

	// Add a user period.
	user := planner.CustomPeriod{
		Type:   planner.PeriodFerie,
		Parent: leave.Father,
		Start:  calendar.Date(2027, time.August, 2),
		End:    calendar.Date(2027, time.August, 9),
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/plans/plan-1/periods", user)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[planner.CustomPeriod](t, resp)

	// Change coverage: wizard periods regenerate, user period survives.
	req := calcRequest()
	req.Coverage = 80
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/plans/plan-1/reconcile", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	periods := decodeBody[[]planner.CustomPeriod](t, resp)

	foundUser := false
	for _, p := range periods {
		if p.ID == created.ID {
			foundUser = true
			assert.True(t, p.Start.Equal(created.Start))
		}
	}
	assert.True(t, foundUser)
}

func TestValidateEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	seedPlan(t, srv, "plan-1")

	// Overlay a ferie period on the mother's leave: blocking error.
	overlap := planner.CustomPeriod{
		Type:   planner.PeriodFerie,
		Parent: leave.Mother,
		Start:  calendar.Date(2026, time.October, 1),
		End:    calendar.Date(2026, time.October, 8),
	}
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/plans/plan-1/periods", overlap)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/plans/plan-1/validate")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := decodeBody[planner.Report](t, resp)
	assert.True(t, report.Blocking())
}
