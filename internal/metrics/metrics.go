package metrics

import (
	"net/http"
	"strconv"
	"time"

	"metrobus/internal/actionlog"
	"metrobus/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exports console state and HTTP traffic on a private registry.
// It listens to controller events to keep its gauges current.
type Collector struct {
	reg *prometheus.Registry

	QueueLength   prometheus.Gauge
	HistoryLength prometheus.Gauge
	Occupancy     *prometheus.GaugeVec // bus label, scoped to the active filter

	Actions     *prometheus.CounterVec // kind label
	Undos       prometheus.Counter
	Redos       prometheus.Counter
	FilterMoves prometheus.Counter

	Requests        *prometheus.CounterVec // method, route, status
	RequestDuration *prometheus.HistogramVec

	NATSPublished  prometheus.Counter
	NATSPublishErr prometheus.Counter
	NATSConnected  prometheus.Gauge
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		QueueLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "metrobus_queue_length",
			Help: "Passengers waiting in the intake queue.",
		}),
		HistoryLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "metrobus_history_length",
			Help: "Actions currently in the undo history.",
		}),
		Occupancy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "metrobus_bus_occupied_seats",
			Help: "Seats booked on a segment overlapping the active station filter.",
		}, []string{"bus"}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "metrobus_actions_recorded_total",
			Help: "Actions recorded in the history, by kind.",
		}, []string{"kind"}),
		Undos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrobus_undo_total",
			Help: "Actions reverted by undo.",
		}),
		Redos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrobus_redo_total",
			Help: "Actions re-applied by redo.",
		}),
		FilterMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrobus_filter_changes_total",
			Help: "Station filter changes.",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "metrobus_http_requests_total",
			Help: "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "metrobus_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"method", "route"}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrobus_nats_published_total",
			Help: "Console events published to NATS.",
		}),
		NATSPublishErr: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "metrobus_nats_publish_errors_total",
			Help: "Console events that failed to publish.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "metrobus_nats_connected",
			Help: "1 while the NATS connection is up.",
		}),
	}

	reg.MustRegister(
		c.QueueLength, c.HistoryLength, c.Occupancy,
		c.Actions, c.Undos, c.Redos, c.FilterMoves,
		c.Requests, c.RequestDuration,
		c.NATSPublished, c.NATSPublishErr, c.NATSConnected,
	)
	return c
}

// ConsoleChanged implements services.Listener.
func (c *Collector) ConsoleChanged(ev services.Event) {
	c.QueueLength.Set(float64(ev.QueueLength))
	c.HistoryLength.Set(float64(ev.HistoryLength))
	for bus, n := range ev.Occupancy {
		c.Occupancy.WithLabelValues(bus).Set(float64(n))
	}
	switch ev.Change {
	case "record":
		if ev.Entry != nil {
			c.Actions.WithLabelValues(string(kindOf(ev.Entry))).Inc()
		}
	case "undo":
		c.Undos.Inc()
	case "redo":
		c.Redos.Inc()
	case "filter":
		c.FilterMoves.Inc()
	}
}

func kindOf(e *actionlog.Entry) actionlog.Kind {
	if e.Action == nil {
		return ""
	}
	return e.Action.Kind()
}

func (c *Collector) NATSPublishedInc()  { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc() { c.NATSPublishErr.Inc() }

func (c *Collector) NATSSetConnected(connected bool) {
	if connected {
		c.NATSConnected.Set(1)
		return
	}
	c.NATSConnected.Set(0)
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Middleware counts and times requests by matched route.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.Requests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
