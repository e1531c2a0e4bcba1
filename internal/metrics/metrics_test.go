package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"metrobus/internal/actionlog"
	"metrobus/internal/services"

	"github.com/gin-gonic/gin"
	dto "github.com/prometheus/client_model/go"
)

// value returns the current value of the series name{labels} from the
// collector's registry, or -1 when absent.
func value(t *testing.T, c *Collector, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := c.reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if !hasLabels(m, labels) {
				continue
			}
			switch {
			case m.GetGauge() != nil:
				return m.GetGauge().GetValue()
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			}
		}
	}
	return -1
}

func hasLabels(m *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestConsoleChangedUpdatesGauges(t *testing.T) {
	c := NewCollector()
	entry := &actionlog.Entry{ID: "1", Action: actionlog.BookTicket{BusID: "BUS-101"}}
	c.ConsoleChanged(services.Event{Change: "record", Entry: entry, QueueLength: 3, HistoryLength: 5, Occupancy: map[string]int{"BUS-101": 2}})
	c.ConsoleChanged(services.Event{Change: "undo", QueueLength: 3, HistoryLength: 4})

	if got := value(t, c, "metrobus_queue_length", nil); got != 3 {
		t.Fatalf("queue length = %v", got)
	}
	if got := value(t, c, "metrobus_history_length", nil); got != 4 {
		t.Fatalf("history length = %v", got)
	}
	if got := value(t, c, "metrobus_bus_occupied_seats", map[string]string{"bus": "BUS-101"}); got != 2 {
		t.Fatalf("occupancy = %v", got)
	}
	if got := value(t, c, "metrobus_actions_recorded_total", map[string]string{"kind": "BOOK_TICKET"}); got != 1 {
		t.Fatalf("book actions = %v", got)
	}
	if got := value(t, c, "metrobus_undo_total", nil); got != 1 {
		t.Fatalf("undos = %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := NewCollector()
	r := gin.New()
	r.Use(c.Middleware())
	r.GET("/ping", func(ctx *gin.Context) { ctx.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(c.Handler()))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))
	labels := map[string]string{"method": "GET", "route": "/ping", "status": "200"}
	if got := value(t, c, "metrobus_http_requests_total", labels); got != 1 {
		t.Fatalf("requests = %v", got)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "metrobus_http_requests_total") {
		t.Fatalf("metrics endpoint: %d %s", w.Code, w.Body.String())
	}
}

func TestNATSHooks(t *testing.T) {
	c := NewCollector()
	c.NATSPublishedInc()
	c.NATSPublishErrInc()
	c.NATSSetConnected(true)
	if value(t, c, "metrobus_nats_published_total", nil) != 1 || value(t, c, "metrobus_nats_publish_errors_total", nil) != 1 {
		t.Fatalf("publish counters not updated")
	}
	if value(t, c, "metrobus_nats_connected", nil) != 1 {
		t.Fatalf("connected gauge not set")
	}
	c.NATSSetConnected(false)
	if value(t, c, "metrobus_nats_connected", nil) != 0 {
		t.Fatalf("connected gauge not cleared")
	}
}
