package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	intconfig "metrobus/internal/config"
	"metrobus/internal/metrics"
	"metrobus/internal/services"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	seed, err := intconfig.LoadFleetSeed("")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	topo, fleet, err := seed.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ctrl := services.NewController(topo, fleet, services.Options{TicketPrefix: "METRO"})
	m := metrics.NewCollector()
	ctrl.AddListener(m)
	return NewRouter(intconfig.Env{}, ctrl, m)
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}

func TestHealthAndRoutes(t *testing.T) {
	r := newTestRouter(t)
	if w := do(t, r, http.MethodGet, "/api/health", nil); w.Code != http.StatusOK {
		t.Fatalf("health = %d", w.Code)
	}
	w := do(t, r, http.MethodGet, "/api/routes", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/api/history/undo") {
		t.Fatalf("routes = %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodGet, "/api/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("no route = %d", w.Code)
	}
}

func TestQueueEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/queue", map[string]string{"name": "Ali", "priority": "normal"})
	if w.Code != http.StatusCreated {
		t.Fatalf("enqueue = %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodPost, "/api/queue", map[string]string{"name": "Sara", "priority": "aged"})
	var created struct {
		Position int `json:"position"`
	}
	decode(t, w, &created)
	if created.Position != 0 {
		t.Fatalf("aged passenger position = %d, want 0", created.Position)
	}

	w = do(t, r, http.MethodPost, "/api/queue", map[string]string{"name": "   "})
	var eb errorBody
	decode(t, w, &eb)
	if w.Code != http.StatusBadRequest || eb.Code != "empty_input" || eb.RequestID == "" {
		t.Fatalf("blank name = %d %+v", w.Code, eb)
	}

	w = do(t, r, http.MethodPost, "/api/queue/board", nil)
	var boarded struct {
		Passenger struct {
			Name string `json:"name"`
		} `json:"passenger"`
	}
	decode(t, w, &boarded)
	if w.Code != http.StatusOK || boarded.Passenger.Name != "Sara" {
		t.Fatalf("board = %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/queue/board", map[string]string{"passenger_id": "missing"})
	decode(t, w, &eb)
	if w.Code != http.StatusNotFound || eb.Code != "passenger_not_found" {
		t.Fatalf("board unknown = %d %+v", w.Code, eb)
	}
}

func TestBookingFlowUndoRedo(t *testing.T) {
	r := newTestRouter(t)

	if w := do(t, r, http.MethodPost, "/api/intake/direct", map[string]string{"name": "Ali"}); w.Code != http.StatusOK {
		t.Fatalf("direct intake = %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodPut, "/api/filter", map[string]string{"pickup_station": "Peshawar Morr", "drop_off_station": "I-9"}); w.Code != http.StatusOK {
		t.Fatalf("filter = %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodPost, "/api/selection/seats", map[string]any{"bus_id": "BUS-101", "seat_index": 0}); w.Code != http.StatusOK {
		t.Fatalf("select = %d %s", w.Code, w.Body.String())
	}
	w := do(t, r, http.MethodPost, "/api/bookings/start", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"name":"Ali"`) {
		t.Fatalf("start = %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodPut, "/api/bookings/drafts/0", map[string]string{"name": "Ali Khan"}); w.Code != http.StatusOK {
		t.Fatalf("draft = %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/bookings/finalize", nil)
	var fin struct {
		Tickets []struct {
			TicketID string `json:"ticket_id"`
			BusID    string `json:"bus_id"`
		} `json:"tickets"`
	}
	decode(t, w, &fin)
	if w.Code != http.StatusCreated || len(fin.Tickets) != 1 || fin.Tickets[0].TicketID != "METRO-00001" {
		t.Fatalf("finalize = %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/tickets/METRO-00001/pdf", nil)
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "application/pdf" || !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("ticket pdf = %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w := do(t, r, http.MethodGet, "/api/buses/BUS-101/manifest", nil); w.Code != http.StatusOK {
		t.Fatalf("manifest = %d", w.Code)
	}

	// Overlapping selection on the booked seat is refused.
	w = do(t, r, http.MethodPost, "/api/selection/seats", map[string]any{"bus_id": "BUS-101", "seat_index": 0})
	var eb errorBody
	decode(t, w, &eb)
	if w.Code != http.StatusConflict || eb.Code != "seat_unavailable" {
		t.Fatalf("reselect = %d %+v", w.Code, eb)
	}

	if w := do(t, r, http.MethodPost, "/api/history/undo", nil); w.Code != http.StatusOK {
		t.Fatalf("undo = %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/api/tickets/METRO-00001", nil); w.Code != http.StatusNotFound {
		t.Fatalf("ticket after undo = %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/history/redo", nil); w.Code != http.StatusOK {
		t.Fatalf("redo = %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/api/tickets/METRO-00001", nil); w.Code != http.StatusOK {
		t.Fatalf("ticket after redo = %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/history/redo", nil)
	decode(t, w, &eb)
	if w.Code != http.StatusConflict || eb.Code != "nothing_to_redo" {
		t.Fatalf("second redo = %d %+v", w.Code, eb)
	}

	if w := do(t, r, http.MethodDelete, "/api/buses/BUS-101/tickets/METRO-00001", nil); w.Code != http.StatusOK {
		t.Fatalf("cancel = %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "metrobus_actions_recorded_total") {
		t.Fatalf("metrics = %d", w.Code)
	}
}

func TestBookingValidationErrors(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/bookings/start", nil)
	var eb errorBody
	decode(t, w, &eb)
	if w.Code != http.StatusBadRequest || eb.Code != "no_selection" {
		t.Fatalf("start without selection = %d %+v", w.Code, eb)
	}

	w = do(t, r, http.MethodPut, "/api/filter", map[string]string{"pickup_station": "I-9", "drop_off_station": "British Homes"})
	decode(t, w, &eb)
	if w.Code != http.StatusBadRequest || eb.Code != "invalid_segment" {
		t.Fatalf("backwards filter = %d %+v", w.Code, eb)
	}

	w = do(t, r, http.MethodPost, "/api/selection/seats", map[string]any{"bus_id": "BUS-101"})
	decode(t, w, &eb)
	if w.Code != http.StatusBadRequest || eb.Code != "invalid_payload" {
		t.Fatalf("missing seat index = %d %+v", w.Code, eb)
	}

	w = do(t, r, http.MethodGet, "/api/buses/BUS-999", nil)
	decode(t, w, &eb)
	if w.Code != http.StatusNotFound || eb.Code != "bus_not_found" {
		t.Fatalf("unknown bus = %d %+v", w.Code, eb)
	}

	w = do(t, r, http.MethodPost, "/api/history/undo", nil)
	decode(t, w, &eb)
	if w.Code != http.StatusConflict || eb.Code != "nothing_to_undo" {
		t.Fatalf("undo on empty history = %d %+v", w.Code, eb)
	}
}

func TestDashboardAndState(t *testing.T) {
	r := newTestRouter(t)
	do(t, r, http.MethodPost, "/api/queue", map[string]string{"name": "Ali"})

	w := do(t, r, http.MethodGet, "/api/dashboard", nil)
	var d struct {
		Waiting        int `json:"waiting"`
		LiveBuses      int `json:"live_buses"`
		VacantSegments int `json:"vacant_segments"`
		TotalOps       int `json:"total_ops"`
	}
	decode(t, w, &d)
	if d.Waiting != 1 || d.LiveBuses != 3 || d.VacantSegments != 60 || d.TotalOps != 1 {
		t.Fatalf("dashboard = %+v", d)
	}

	w = do(t, r, http.MethodGet, "/api/stations", nil)
	var st struct {
		Stations     []string `json:"stations"`
		Destinations []string `json:"destinations"`
	}
	decode(t, w, &st)
	if len(st.Stations) != 6 || len(st.Destinations) != 5 {
		t.Fatalf("stations = %+v", st)
	}

	if w := do(t, r, http.MethodGet, "/api/state", nil); w.Code != http.StatusOK {
		t.Fatalf("state = %d", w.Code)
	}
}
